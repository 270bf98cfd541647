// Package web serves the classification form and JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Veraticus/sector-sift/internal/model"
	"github.com/Veraticus/sector-sift/internal/service"
	"github.com/Veraticus/sector-sift/internal/telemetry"
)

// Default timeout values.
const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 5 * time.Minute
	defaultIdleTimeout  = 120 * time.Second
	shutdownTimeout     = 10 * time.Second
)

// ErrNoClassifiers is returned when a server is configured without classifiers.
var ErrNoClassifiers = errors.New("no classifiers configured")

// Config holds server dependencies. Storage is optional; without it run
// history endpoints answer 503 and batch runs are never saved.
type Config struct {
	Storage       service.Storage
	Registry      *prometheus.Registry
	Logger        *slog.Logger
	DefaultMethod string
	Classifiers   []service.Classifier
	Rules         model.RuleTable
	Concurrency   int
	Debug         bool
}

// Server handles HTTP requests for the classifier.
type Server struct {
	storage       service.Storage
	registry      *prometheus.Registry
	metrics       *telemetry.Metrics
	logger        *slog.Logger
	classifiers   map[string]service.Classifier
	router        *gin.Engine
	defaultMethod string
	methods       []string
	rules         model.RuleTable
	concurrency   int
}

// NewServer builds the router and registers metrics.
func NewServer(cfg Config) (*Server, error) {
	if len(cfg.Classifiers) == 0 {
		return nil, ErrNoClassifiers
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics := telemetry.NewMetrics(registry)

	s := &Server{
		storage:     cfg.Storage,
		registry:    registry,
		metrics:     metrics,
		logger:      logger,
		classifiers: make(map[string]service.Classifier, len(cfg.Classifiers)),
		rules:       cfg.Rules.Clone(),
		concurrency: cfg.Concurrency,
	}
	for _, c := range cfg.Classifiers {
		s.classifiers[c.Name()] = metrics.Instrument(c)
		s.methods = append(s.methods, c.Name())
	}
	sort.Strings(s.methods)

	s.defaultMethod = cfg.DefaultMethod
	if _, ok := s.classifiers[s.defaultMethod]; !ok {
		s.defaultMethod = cfg.Classifiers[0].Name()
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	router.SetHTMLTemplate(template.Must(template.New("index").Funcs(template.FuncMap{
		"percent": func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) },
		"join":    strings.Join,
	}).Parse(indexTemplate)))
	setupRoutes(router, s)
	s.router = router

	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Methods returns the configured classifier names, sorted.
func (s *Server) Methods() []string {
	return append([]string(nil), s.methods...)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", "addr", addr, "methods", s.methods)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}
	s.logger.Info("web server stopped")
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// classifier resolves a method name; empty means the default.
func (s *Server) classifier(method string) (service.Classifier, error) {
	method = strings.ToLower(strings.TrimSpace(method))
	if method == "" {
		method = s.defaultMethod
	}
	c, ok := s.classifiers[method]
	if !ok {
		return nil, fmt.Errorf("unknown classification method %q (available: %s)", method, strings.Join(s.methods, ", "))
	}
	return c, nil
}
