package server

import (
	"context"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/seo-optimizer/ai-analyzer/analyzer"
	"github.com/seo-optimizer/ai-analyzer/middleware"
	"github.com/seo-optimizer/ai-analyzer/stats"
)

// Error messages returned to callers. Upstream detail never leaves the server.
const (
	msgMissingInput   = "URL and keywords are required"
	msgAnalysisFailed = "Failed to analyze SEO"
)

// Analyzer runs a single SEO analysis
type Analyzer interface {
	AnalyzeWithOutcome(ctx context.Context, req analyzer.Request) (*analyzer.Result, analyzer.Outcome, error)
}

// Options tune the router
type Options struct {
	DevMode     bool
	AllowOrigin string
}

// Server exposes the analysis API over HTTP
type Server struct {
	analyzer Analyzer
	stats    *stats.Storage
	log      logrus.FieldLogger
	opts     Options
}

// New creates a Server. A nil storage gets a fresh in-memory one and a nil logger discards output.
func New(a Analyzer, storage *stats.Storage, log logrus.FieldLogger, opts Options) *Server {
	if storage == nil {
		storage = stats.NewStorage()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Server{
		analyzer: a,
		stats:    storage,
		log:      log,
		opts:     opts,
	}
}

// Router builds the gin engine with all middlewares and routes
func (s *Server) Router() *gin.Engine {
	r := gin.New()

	r.Use(middleware.ErrorHandler(s.log))
	r.Use(middleware.RequestLogger(s.log))
	r.Use(middleware.CORS(s.opts.AllowOrigin))

	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/analyze", middleware.Stats(s.stats), s.analyze)
		api.GET("/statistics", s.statistics)
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// analyzeRequest uses pointers so an absent field can be told apart from an empty one
type analyzeRequest struct {
	URL      *string `json:"url"`
	Keywords *string `json:"keywords"`
}

func (s *Server) analyze(c *gin.Context) {
	var body analyzeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.log.WithError(err).Warn("invalid analyze request body")
		c.Set(middleware.OutcomeKey, stats.Rejected)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingInput})
		return
	}
	// An empty keywords string is allowed and means no keyword focus.
	if body.URL == nil || *body.URL == "" || body.Keywords == nil {
		c.Set(middleware.OutcomeKey, stats.Rejected)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingInput})
		return
	}

	req := analyzer.Request{URL: *body.URL, Keywords: *body.Keywords}
	c.Set(middleware.AnalyzedURLKey, req.URL)

	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{
				"panic": r,
				"url":   req.URL,
				"stack": string(debug.Stack()),
			}).Error("panic in analyze-seo API")
			c.Set(middleware.OutcomeKey, stats.Failed)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgAnalysisFailed})
		}
	}()

	result, outcome, err := s.analyzer.AnalyzeWithOutcome(c.Request.Context(), req)
	if err != nil {
		s.log.WithError(err).WithField("url", req.URL).Error("error in analyze-seo API")
		c.Set(middleware.OutcomeKey, stats.Failed)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgAnalysisFailed})
		return
	}

	if outcome == analyzer.OutcomeParsed {
		c.Set(middleware.OutcomeKey, stats.Succeeded)
	} else {
		c.Set(middleware.OutcomeKey, stats.Unparsable)
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) statistics(c *gin.Context) {
	current := s.stats.GetCurrentStats()
	body := gin.H{
		"totalRequests":    current.Requests,
		"succeeded":        current.Succeeded,
		"unparsable":       current.Unparsable,
		"rejected":         current.Rejected,
		"failed":           current.Failed,
		"errorRate":        current.ErrorRate(),
		"averageLatencyMs": current.AverageLatency,
	}
	if s.opts.DevMode {
		body["popularUrls"] = s.stats.TopURLs(5)
		body["months"] = s.stats.GetAllMonths()
	}
	c.JSON(http.StatusOK, body)
}
