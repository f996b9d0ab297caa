package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/installctl/internal/config"
)

// installctl config.toml key mapping to panel runtime settings.
type fileConfig struct {
	AppName     string   `toml:"app_name"`
	ListenAddr  string   `toml:"listen_addr"`
	WorkDir     string   `toml:"work_dir"`
	CorsOrigins []string `toml:"cors_origins"`
	Heartbeat   string   `toml:"heartbeat"`
}

// loadPanelConfig overlays keys defined in path onto the defaults. An empty
// path yields the resolved defaults.
func loadPanelConfig(path string) (config.PanelConfig, error) {
	cfg := config.Default()
	if strings.TrimSpace(path) == "" {
		return cfg.Resolve()
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config.PanelConfig{}, fmt.Errorf("load installctl config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config.PanelConfig{}, fmt.Errorf("load installctl config: unknown key %q", undecoded[0].String())
	}

	var over config.Overrides
	if meta.IsDefined("app_name") {
		over.AppName = &raw.AppName
	}
	if meta.IsDefined("listen_addr") {
		over.ListenAddr = &raw.ListenAddr
	}
	if meta.IsDefined("work_dir") {
		over.WorkDir = &raw.WorkDir
	}
	if meta.IsDefined("cors_origins") {
		over.CorsOrigins = &raw.CorsOrigins
	}
	if meta.IsDefined("heartbeat") {
		over.Heartbeat = &raw.Heartbeat
	}
	return over.Apply(cfg)
}
