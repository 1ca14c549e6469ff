package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"roombook/internal/config"
	"roombook/internal/domain"

	"github.com/rs/zerolog"
)

// WeekExporter renders the current week schedule to a file and returns its path.
type WeekExporter interface {
	ExportWeek(ctx context.Context) (string, error)
}

// HTTPServer exposes the booking API and serves the static frontend.
type HTTPServer struct {
	cfg      config.ServerConfig
	service  domain.BookingService
	exporter WeekExporter
	limiter  domain.RateLimiter
	logger   *zerolog.Logger
	server   *http.Server
}

func NewHTTPServer(
	cfg config.ServerConfig,
	service domain.BookingService,
	exporter WeekExporter,
	limiter domain.RateLimiter,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		service:  service,
		exporter: exporter,
		limiter:  limiter,
		logger:   logger,
	}

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler собирает маршруты и цепочку middleware
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/bookings", s.handleBookings)
	mux.HandleFunc("/api/bookings/", s.handleBookingByID)
	mux.HandleFunc("/api/reset-week", s.handleResetWeek)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/export", s.handleExport)
	mux.HandleFunc("/healthz", s.handleHealthz)

	if s.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}

	return requestIDMiddleware(s.loggingMiddleware(s.rateLimitMiddleware(mux)))
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
