package server

import (
	"context"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/helmcode/medicheck/pkg/analyzer"
	"github.com/helmcode/medicheck/pkg/config"
	"github.com/helmcode/medicheck/pkg/model"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	EndPointRoot    = "/"
	EndPointHealth  = "/health"
	EndPointAnalyze = "/api/analyze"
	EndPointReport  = "/api/report"
	EndPointMetrics = "/metrics"

	ServiceName = "medicheck"
)

// Analyzer is the pipeline the handlers drive.
type Analyzer interface {
	Analyze(ctx context.Context, symptoms string) (*model.AnalysisResult, analyzer.Outcome, error)
}

// Renderer turns an analysis into a downloadable document.
type Renderer interface {
	Render(result *model.AnalysisResult, symptoms string) ([]byte, error)
}

type Server struct {
	analyzer Analyzer
	renderer Renderer
	version  string
}

func New(a Analyzer, r Renderer, version string) *Server {
	return &Server{analyzer: a, renderer: r, version: version}
}

// Router builds the gin engine with CORS, recovery and all routes.
func (s *Server) Router(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger())
	router.Use(gin.CustomRecovery(recoverInternal))
	router.Use(CORSMiddleware(cfg.AllowedOrigins))

	router.GET(EndPointRoot, s.Root)
	router.GET(EndPointHealth, s.HealthCheck)
	router.GET(EndPointMetrics, gin.WrapH(promhttp.Handler()))

	router.POST(EndPointAnalyze, s.AnalyzeSymptoms)
	router.POST(EndPointReport, s.DownloadReport)

	return router
}

// RequestLogger writes one apex/log entry per request once it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   status,
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		})
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request")
		case status >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// CORSMiddleware answers preflight requests and sets the allow headers.
func CORSMiddleware(allowedOrigins string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func recoverInternal(c *gin.Context, recovered any) {
	log.WithField("panic", recovered).WithField("path", c.Request.URL.Path).Error("recovered from panic")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternal(c.Request.URL.Path)})
}

func errInternal(path string) string {
	if path == EndPointReport {
		return "Failed to generate report."
	}
	return "Failed to analyze symptoms."
}
