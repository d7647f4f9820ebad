package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/ai-analyzer/stats"
)

// Context keys handlers use to report what happened to an analysis
const (
	OutcomeKey     = "analysisOutcome"
	AnalyzedURLKey = "analyzedURL"
)

// Stats records an outcome for every request to the route it is mounted on.
// Handlers set OutcomeKey; when they don't, the status code decides.
func Stats(storage *stats.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		value, _ := c.Get(OutcomeKey)
		outcome, ok := value.(stats.Outcome)
		if !ok {
			switch {
			case c.Writer.Status() >= 500:
				outcome = stats.Failed
			case c.Writer.Status() >= 400:
				outcome = stats.Rejected
			default:
				outcome = stats.Succeeded
			}
		}

		storage.Record(c.GetString(AnalyzedURLKey), outcome, time.Since(start))
	}
}
