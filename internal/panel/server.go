package panel

import (
	"context"
	"time"

	"github.com/danmuck/installctl/internal/dispatch"
	"github.com/danmuck/installctl/internal/modules"
	"github.com/danmuck/installctl/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	Version = "0.1.0"

	MsgStartedPrefix = "Spuštěno: "
	MsgUnknownModule = "Neznámý modul"
)

// Launcher starts a module run without waiting for it.
type Launcher interface {
	Submit(ctx context.Context, m modules.Module) *dispatch.Run
}

// Options configures a Panel.
type Options struct {
	ID          string
	CorsOrigins []string
	Registry    *modules.Registry
	Launcher    Launcher
}

// Panel is the installer HTTP front door.
type Panel struct {
	ID       string
	Appeared time.Time

	registry *modules.Registry
	launcher Launcher
	router   *gin.Engine
}

// runResponse is the JSON body of POST /run.
type runResponse struct {
	OK  bool   `json:"ok"`
	Msg string `json:"msg"`
}

// Appear builds the router with middleware and routes registered.
func Appear(opts Options) *Panel {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(opts.ID))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(opts.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	registry := opts.Registry
	if registry == nil {
		registry = modules.NewRegistry()
	}
	launcher := opts.Launcher
	if launcher == nil {
		launcher = dispatch.New(dispatch.Config{})
	}

	p := &Panel{
		ID:       opts.ID,
		Appeared: time.Now(),
		registry: registry,
		launcher: launcher,
		router:   r,
	}
	p.registerRoutes()
	return p
}

func (p *Panel) HTTPRouter() *gin.Engine {
	return p.router
}

func (p *Panel) Registry() *modules.Registry {
	return p.registry
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://127.0.0.1:5001", "http://localhost:5001"}
	}
	return origins
}
