/*
Package monitoring provides Prometheus metrics for the liview backend.

# Features

- HTTP request metrics (count, latency) labelled by route template
- Extraction metrics (attempts by policy and result, duration, entries, bytes)
- Session metrics (registered extracted directories, live temp directories)
- Discovery metrics (listings by operation and result)

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

A nil *Metrics is valid and records nothing, so domain components can run
without a collector in tests and in the CLI.
*/
package monitoring
