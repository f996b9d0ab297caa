package panel

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/danmuck/installctl/internal/config"
	"github.com/danmuck/installctl/internal/dispatch"
	"github.com/danmuck/installctl/internal/modules"
	"github.com/danmuck/installctl/internal/tools"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

// Service runs the panel HTTP server as a standalone process.
type Service struct {
	cfg        config.PanelConfig
	dispatcher *dispatch.Dispatcher
	panel      *Panel
	server     *http.Server
}

// NewService wires registry, dispatcher and router from a resolved config.
// A nil runner launches scripts on the local host.
func NewService(cfg config.PanelConfig, runner tools.CommandRunner) *Service {
	d := dispatch.New(dispatch.Config{WorkDir: cfg.WorkDir, Runner: runner})
	p := Appear(Options{
		ID:          cfg.AppName,
		CorsOrigins: cfg.CorsOrigins,
		Registry:    modules.NewRegistry(),
		Launcher:    d,
	})
	return &Service{
		cfg:        cfg,
		dispatcher: d,
		panel:      p,
		server: &http.Server{
			Handler:           p.HTTPRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Service) Panel() *Panel {
	return s.panel
}

func (s *Service) Dispatcher() *dispatch.Dispatcher {
	return s.dispatcher
}

// Run listens on the configured address and blocks until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is done. Runs still executing at
// shutdown are left to finish on their own.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	heartbeat := s.cfg.Heartbeat
	if heartbeat <= 0 {
		heartbeat = config.DefaultHeartbeat
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.server.Serve(ln)
	}()
	log.Info().
		Str("addr", ln.Addr().String()).
		Str("work_dir", s.cfg.WorkDir).
		Int("modules", s.panel.Registry().Len()).
		Msg("panel listening")

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := s.server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			log.Info().Int64("in_flight", s.dispatcher.InFlight()).Msg("panel shutdown")
			return nil
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ticker.C:
			log.Info().
				Str("service", s.cfg.AppName).
				Int64("in_flight", s.dispatcher.InFlight()).
				Msg("panel heartbeat")
		}
	}
}
