package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-key/internal/config"
	"github.com/MKhiriev/go-key/internal/logger"
	"github.com/MKhiriev/go-key/internal/service"
)

type server struct {
	httpServer *httpServer
	reloadJob  service.ReloadJob

	cfg    config.Server
	logger *logger.Logger
}

// NewServer serves router on cfg.Address. When job is not nil it reloads
// the vault every cfg.ReloadInterval; a negative interval disables it.
func NewServer(router http.Handler, job service.ReloadJob, cfg config.Server, logger *logger.Logger) (Server, error) {
	if cfg.Address == "" {
		return nil, errNoAddress
	}

	logger.Info().Str("address", cfg.Address).Msg("creating new server...")
	return &server{
		httpServer: newHTTPServer(router, cfg.Address, logger),
		reloadJob:  job,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

func (s *server) Addr() string {
	return s.httpServer.addr()
}

func (s *server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.httpServer.listen(); err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Address, err)
	}

	if s.reloadJob != nil && s.cfg.ReloadInterval >= 0 {
		s.reloadJob.Start(ctx, s.cfg.ReloadInterval)
		defer s.reloadJob.Stop()
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.RunServer()
	}()
	s.logger.Info().Str("address", s.Addr()).Msg("Launching HTTP server")

	select {
	case <-ctx.Done():
		s.httpServer.Shutdown()
		if err := <-serveErr; err != nil {
			return err
		}
		s.logger.Info().Msg("server Shutdown gracefully")
		return nil

	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve on %s: %w", s.cfg.Address, err)
		}
		return nil
	}
}
