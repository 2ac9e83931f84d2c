package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/helmcode/medicheck/pkg/analyzer"
	"github.com/helmcode/medicheck/pkg/metrics"
	"github.com/helmcode/medicheck/pkg/report"
	"github.com/helmcode/medicheck/pkg/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var servePort string

func NewServeCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the symptom analysis HTTP API",
		Long: `Run the HTTP API used by the MediCheck front end.

Routes:
  GET  /              liveness message
  GET  /health        health check
  POST /api/analyze   {"symptoms": "..."} -> analysis result
  POST /api/report    {"symptoms": "...", "result": {...}} -> PDF report
  GET  /metrics       Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), version)
		},
	}

	cmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&llmProvider, "provider", "", "LLM provider (gemini, mock). Defaults to LLM_PROVIDER")
	cmd.Flags().StringVar(&llmModel, "model", "", "LLM model to use (overrides LLM_MODEL)")

	return cmd
}

func runServe(ctx context.Context, version string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		withPort := *cfg
		withPort.Port = servePort
		cfg = &withPort
	}

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.Register()

	aiAnalyzer := analyzer.New(cfg)
	log.WithFields(log.Fields{
		"mode":    aiAnalyzer.Mode().String(),
		"model":   cfg.Model,
		"timeout": cfg.Timeout.String(),
	}).Info("analysis pipeline ready")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.New(aiAnalyzer, report.NewRenderer(), version).Router(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("Server exited")
	return nil
}
