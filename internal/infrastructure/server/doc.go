// Package server assembles the liview HTTP server: configuration, logging,
// metrics, the browsing session and the gin router.
package server
