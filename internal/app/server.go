package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/logger"
)

const (
	defaultWriteTimeout = 15 * time.Second
	// writeTimeoutSlack leaves room to send the 504 after a request timeout.
	writeTimeoutSlack = 5 * time.Second
)

// Server wraps http.Server with graceful shutdown capabilities.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// NewServer creates a server on port. The write timeout is raised above
// requestTimeout so timed-out requests still get their response.
func NewServer(handler http.Handler, port string, requestTimeout time.Duration) *Server {
	writeTimeout := defaultWriteTimeout
	if requestTimeout+writeTimeoutSlack > writeTimeout {
		writeTimeout = requestTimeout + writeTimeoutSlack
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 20, // 1MB
		},
		shutdownTimeout: 10 * time.Second,
	}
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve serves until ctx is done, then shuts down gracefully. A listener
// error is returned immediately.
func (s *Server) Serve(ctx context.Context) error {
	log := logger.Component("server")
	errChan := make(chan error, 1)

	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Msg("Server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutdown requested, draining connections")
	}

	return s.Shutdown()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	log := logger.Component("server")
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server stopped gracefully")
	return nil
}
