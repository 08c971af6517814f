// Package main is the entry point for the liview backend server.
//
// The server resolves folders and zip archives into image collections for
// the viewer front-end. Archives are extracted into temp directories that
// are removed on shutdown (scoped) or kept under the cache root (named).
//
// Configuration:
//   - Defaults for local use
//   - Optional TOML file named by LIVIEW_CONFIG
//   - Environment variables (PORT, STORAGE_POLICY, LOG_LEVEL, ...)
//   - CLI flags (override everything above)
//
// Usage:
//
//	./server -port 8000 -policy scoped
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown, scoped directories removed
package main
