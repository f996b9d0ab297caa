package panel

import (
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/installctl/internal/modules"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func (p *Panel) registerRoutes() {
	p.router.GET("/", p.handleIndex)
	p.router.POST("/run", p.handleRun)

	p.router.GET("/modules", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"modules": p.registry.List(),
		})
	})

	p.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(p.Appeared).String(),
			"service": p.ID,
			"version": Version,
		})
	})

	p.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"uptime":  time.Since(p.Appeared).String(),
			"service": p.ID,
			"version": Version,
		})
	})

	p.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (p *Panel) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", installerPage)
}

func (p *Panel) handleRun(c *gin.Context) {
	name := c.PostForm("module")
	m, err := p.registry.Resolve(name)
	if err != nil {
		status := http.StatusInternalServerError
		msg := err.Error()
		if errors.Is(err, modules.ErrUnknownModule) {
			status = http.StatusBadRequest
			msg = MsgUnknownModule
		}
		log.Warn().Str("module", name).Err(err).Msg("run rejected")
		c.JSON(status, runResponse{OK: false, Msg: msg})
		return
	}

	// the run handle is discarded; the dispatcher logs the outcome
	run := p.launcher.Submit(c.Request.Context(), m)
	log.Debug().Str("module", m.ID).Str("run_id", run.ID).Msg("run accepted")
	c.JSON(http.StatusOK, runResponse{OK: true, Msg: MsgStartedPrefix + m.ID})
}
