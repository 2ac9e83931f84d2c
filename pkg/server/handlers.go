package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/helmcode/medicheck/pkg/model"
	"github.com/helmcode/medicheck/pkg/parser"
	"github.com/helmcode/medicheck/pkg/report"
)

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Symptoms string `json:"symptoms"`
}

// ReportRequest is the body of POST /api/report.
type ReportRequest struct {
	Symptoms string          `json:"symptoms"`
	Result   json.RawMessage `json:"result"`
}

// Root is a plain liveness message.
func (s *Server) Root(c *gin.Context) {
	c.String(http.StatusOK, "Healthcare Symptom Checker API is running.")
}

func (s *Server) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
		"version": s.version,
	})
}

// AnalyzeSymptoms runs the pipeline. Pipeline failures come back as a
// degraded 200 payload; only missing input is a client error.
func (s *Server) AnalyzeSymptoms(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symptoms are required."})
		return
	}

	result, outcome, err := s.analyzer.Analyze(c.Request.Context(), req.Symptoms)
	if errors.Is(err, model.ErrEmptySymptoms) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symptoms are required."})
		return
	}
	if err != nil || result == nil {
		log.WithError(err).Error("error analyzing symptoms")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze symptoms."})
		return
	}

	if outcome.Degraded() {
		c.Header("X-Analysis-Outcome", string(outcome))
	}
	c.JSON(http.StatusOK, result)
}

// DownloadReport renders a previously returned analysis as a PDF attachment.
func (s *Server) DownloadReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report request."})
		return
	}
	if strings.TrimSpace(req.Symptoms) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symptoms are required."})
		return
	}
	// The result goes through the same validation as a model answer.
	result, err := parser.ParseAnalysisResponse(string(req.Result))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Analysis result is required."})
		return
	}

	data, err := s.renderer.Render(result, req.Symptoms)
	if err != nil {
		log.WithError(err).Error("error rendering report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report."})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.DefaultFilename))
	c.Data(http.StatusOK, report.ContentType, data)
}
