package config

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidConfig = errors.New("config: invalid panel config")

const (
	DefaultAppName    = "installctl"
	DefaultListenAddr = "127.0.0.1:5001"
	DefaultWorkDir    = "~/.acode_dev_master"
	DefaultHeartbeat  = time.Minute
)

// PanelConfig is the resolved runtime configuration of the installer panel.
type PanelConfig struct {
	AppName     string
	ListenAddr  string
	WorkDir     string
	CorsOrigins []string
	Heartbeat   time.Duration
}

// FileConfig is the on-disk TOML shape of PanelConfig.
type FileConfig struct {
	AppName     string   `toml:"app_name"`
	ListenAddr  string   `toml:"listen_addr"`
	WorkDir     string   `toml:"work_dir"`
	CorsOrigins []string `toml:"cors_origins,omitempty"`
	Heartbeat   string   `toml:"heartbeat"`
}

func Default() PanelConfig {
	return PanelConfig{
		AppName:    DefaultAppName,
		ListenAddr: DefaultListenAddr,
		WorkDir:    DefaultWorkDir,
		Heartbeat:  DefaultHeartbeat,
	}
}

// Overrides holds the keys a config file defined. A nil field was absent and
// keeps its default; a defined field replaces the default even when empty.
type Overrides struct {
	AppName     *string   `toml:"app_name"`
	ListenAddr  *string   `toml:"listen_addr"`
	WorkDir     *string   `toml:"work_dir"`
	CorsOrigins *[]string `toml:"cors_origins"`
	Heartbeat   *string   `toml:"heartbeat"`
}

// Apply overlays the defined keys onto cfg and resolves the result.
func (o Overrides) Apply(cfg PanelConfig) (PanelConfig, error) {
	if o.AppName != nil {
		cfg.AppName = strings.TrimSpace(*o.AppName)
	}
	if o.ListenAddr != nil {
		cfg.ListenAddr = strings.TrimSpace(*o.ListenAddr)
	}
	if o.WorkDir != nil {
		cfg.WorkDir = strings.TrimSpace(*o.WorkDir)
	}
	if o.CorsOrigins != nil {
		cfg.CorsOrigins = *o.CorsOrigins
	}
	if o.Heartbeat != nil {
		d, err := time.ParseDuration(strings.TrimSpace(*o.Heartbeat))
		if err != nil {
			return PanelConfig{}, fmt.Errorf("parse heartbeat: %w", err)
		}
		cfg.Heartbeat = d
	}
	return cfg.Resolve()
}

// Load reads a TOML file strictly (unknown keys fail) over the defaults.
func Load(path string) (PanelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PanelConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	var raw Overrides
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return PanelConfig{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return raw.Apply(Default())
}

// Resolve expands the work dir, fills derived defaults and validates.
func (c PanelConfig) Resolve() (PanelConfig, error) {
	dir, err := ExpandHome(strings.TrimSpace(c.WorkDir))
	if err != nil {
		return PanelConfig{}, err
	}
	c.WorkDir = dir
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	c.CorsOrigins = normalizeOrigins(c.CorsOrigins)
	if len(c.CorsOrigins) == 0 {
		c.CorsOrigins = selfOrigins(c.ListenAddr)
	}
	if err := c.Validate(); err != nil {
		return PanelConfig{}, err
	}
	return c, nil
}

func (c PanelConfig) Validate() error {
	if strings.TrimSpace(c.AppName) == "" {
		return fmt.Errorf("%w: app_name is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.WorkDir) == "" {
		return fmt.Errorf("%w: work_dir is required", ErrInvalidConfig)
	}
	if c.Heartbeat <= 0 {
		return fmt.Errorf("%w: heartbeat must be positive", ErrInvalidConfig)
	}
	for _, origin := range c.CorsOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("%w: cors origin %q must be an http(s) url", ErrInvalidConfig, origin)
		}
	}
	return ValidateListenAddr(c.ListenAddr)
}

// ValidateListenAddr accepts only loopback host:port pairs.
func ValidateListenAddr(addr string) error {
	host, port, err := net.SplitHostPort(strings.TrimSpace(addr))
	if err != nil {
		return fmt.Errorf("%w: listen_addr %q: %v", ErrInvalidConfig, addr, err)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%w: listen_addr %q has invalid port", ErrInvalidConfig, addr)
	}
	if host == "localhost" {
		return nil
	}
	ip := net.ParseIP(host)
	if ip == nil || !ip.IsLoopback() {
		return fmt.Errorf("%w: listen_addr %q must bind a loopback address", ErrInvalidConfig, addr)
	}
	return nil
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: resolve home for %q: %v", ErrInvalidConfig, path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimRight(strings.TrimSpace(origin), "/")
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func selfOrigins(addr string) []string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil
	}
	return []string{
		"http://127.0.0.1:" + port,
		"http://localhost:" + port,
	}
}
