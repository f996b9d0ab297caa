package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/installctl/internal/observability"
	"github.com/danmuck/installctl/internal/panel"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "optional TOML config path")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "installctl: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadPanelConfig(configPath)
	if err != nil {
		return err
	}
	observability.InitLogger(cfg.AppName)
	gin.SetMode(gin.ReleaseMode)
	log.Info().Str("path", configPath).Str("listen_addr", cfg.ListenAddr).Msg("loaded panel config")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return panel.NewService(cfg, nil).Run(ctx)
}
