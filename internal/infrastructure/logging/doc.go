// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Components take a *Logger and derive a named child, so log lines carry the
// emitting component ("archive", "session", "http"):
//
//	logger := logging.OrNop(base).Named("archive")
//	logger.Info("Extraction finished", zap.String("archive", path), zap.Int("entries", n))
//
// Tests pass logging.NewNop().
package logging
