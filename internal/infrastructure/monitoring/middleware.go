package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Route template keeps label cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// Timer measures an extraction
type Timer struct {
	start   time.Time
	metrics *Metrics
	policy  string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, policy string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		policy:  policy,
	}
}

// Stop records the extraction with its outcome
func (t *Timer) Stop(err error, entries int, bytes int64) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	t.metrics.RecordExtraction(t.policy, result, time.Since(t.start), entries, bytes)
}
