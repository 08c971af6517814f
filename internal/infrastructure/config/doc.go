// Package config provides 12-factor configuration management for the liview
// backend.
//
// Values are layered: Default(), then the TOML file named by LIVIEW_CONFIG,
// then environment variables. CLI flags in cmd/server override the result.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Storage: temp root, cache root, default lifetime policy
//   - Archive: per-entry size cap (human sizes, e.g. "512MB")
//   - Images: extension allow-list
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting
//
// Environment Variables:
//   - PORT, HOST
//   - STORAGE_TEMP_ROOT, STORAGE_CACHE_ROOT, STORAGE_POLICY
//   - ARCHIVE_MAX_ENTRY_SIZE, IMAGE_EXTENSIONS (comma separated)
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
