// Package server exposes the analysis results over a JSON HTTP API.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/betting-optimizer/internal/apifootball"
	"github.com/yourusername/betting-optimizer/internal/metrics"
	"github.com/yourusername/betting-optimizer/internal/service"
)

// AnalyzerAPI is the slice of the analyzer the HTTP layer needs
type AnalyzerAPI interface {
	Current() *service.Snapshot
	Analyze(ctx context.Context) (*service.Snapshot, error)
	Status(ctx context.Context) (*apifootball.AccountStatus, error)
}

// Config holds the HTTP server settings
type Config struct {
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	DefaultStake     float64
	APIKeyConfigured bool
	MetricsEnabled   bool
	MetricsPath      string

	// Engine bounds used when a request narrows max_legs and the
	// combinations are regenerated from the snapshot's singles
	MaxEligibleSingles int
	MaxAccumulators    int
}

// Server serves the betting optimizer API
type Server struct {
	cfg      Config
	analyzer AnalyzerAPI
	logger   *logrus.Logger
	server   *http.Server
}

// NewServer creates the API server
func NewServer(cfg Config, analyzer AnalyzerAPI, logger *logrus.Logger) *Server {
	if cfg.DefaultStake <= 0 {
		cfg.DefaultStake = 10.0
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	return &Server{cfg: cfg, analyzer: analyzer, logger: logger}
}

// Handler builds the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.instrument("/api/status", s.handleStatus))
	mux.HandleFunc("/api/predictions", s.instrument("/api/predictions", s.handlePredictions))
	mux.HandleFunc("/api/accumulators", s.instrument("/api/accumulators", s.handleAccumulators))
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/live", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	if s.cfg.MetricsEnabled {
		mux.Handle(s.cfg.MetricsPath, metrics.Handler())
	}
	return mux
}

// Start runs the server until the context is cancelled
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         ":" + strconv.Itoa(s.cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	s.logger.WithField("port", s.cfg.Port).Info("API server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	s.logger.Info("API server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// instrument records per-path request latency
func (s *Server) instrument(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		metrics.RecordHTTPRequest(path, time.Since(start).Seconds())
	}
}
