package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/danmuck/installctl/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadPanelConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := loadPanelConfig("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:5001" {
		t.Fatalf("unexpected listen addr: %q", cfg.ListenAddr)
	}
	if cfg.WorkDir != filepath.Join(home, ".acode_dev_master") {
		t.Fatalf("unexpected work dir: %q", cfg.WorkDir)
	}
	if cfg.AppName != "installctl" {
		t.Fatalf("unexpected app name: %q", cfg.AppName)
	}
}

func TestLoadPanelConfigOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := writeConfig(t, `
listen_addr = "localhost:5055"
work_dir = "~/installers"
heartbeat = "30s"
`)

	cfg, err := loadPanelConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ListenAddr != "localhost:5055" {
		t.Fatalf("unexpected listen addr: %q", cfg.ListenAddr)
	}
	if cfg.WorkDir != filepath.Join(home, "installers") {
		t.Fatalf("unexpected work dir: %q", cfg.WorkDir)
	}
	if cfg.Heartbeat != 30*time.Second {
		t.Fatalf("unexpected heartbeat: %v", cfg.Heartbeat)
	}
	if cfg.AppName != "installctl" {
		t.Fatalf("undefined key should keep default, got %q", cfg.AppName)
	}
	if len(cfg.CorsOrigins) != 2 || cfg.CorsOrigins[1] != "http://localhost:5055" {
		t.Fatalf("unexpected derived origins: %v", cfg.CorsOrigins)
	}
}

func TestLoadPanelConfigEmptyAppNameFails(t *testing.T) {
	path := writeConfig(t, `app_name = ""`)
	if _, err := loadPanelConfig(path); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadPanelConfigRejectsRemoteBind(t *testing.T) {
	path := writeConfig(t, `listen_addr = "0.0.0.0:5001"`)
	if _, err := loadPanelConfig(path); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadPanelConfigRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, `
[modules]
core = "rm -rf /"
`)
	if _, err := loadPanelConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadPanelConfigBadHeartbeat(t *testing.T) {
	path := writeConfig(t, `heartbeat = "often"`)
	if _, err := loadPanelConfig(path); err == nil {
		t.Fatalf("expected heartbeat parse error")
	}
}

func TestLoadPanelConfigMissingFile(t *testing.T) {
	if _, err := loadPanelConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestLoadPanelConfigMatchesConfigLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cases := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "empty app_name", content: `app_name = ""`, wantErr: true},
		{name: "empty listen_addr", content: `listen_addr = ""`, wantErr: true},
		{name: "empty work_dir", content: `work_dir = ""`, wantErr: true},
		{name: "empty heartbeat", content: `heartbeat = ""`, wantErr: true},
		{name: "remote bind", content: `listen_addr = "0.0.0.0:5001"`, wantErr: true},
		{name: "empty origins", content: `cors_origins = []`, wantErr: false},
		{name: "overrides", content: "app_name = \"panel\"\nlisten_addr = \"localhost:5055\"\nheartbeat = \"5s\"\n", wantErr: false},
		{name: "empty file", content: "", wantErr: false},
	}
	for _, tc := range cases {
		path := writeConfig(t, tc.content)

		fromCmd, cmdErr := loadPanelConfig(path)
		fromPkg, pkgErr := config.Load(path)

		if (cmdErr != nil) != tc.wantErr {
			t.Fatalf("%s: loadPanelConfig err=%v wantErr=%v", tc.name, cmdErr, tc.wantErr)
		}
		if (pkgErr != nil) != tc.wantErr {
			t.Fatalf("%s: config.Load err=%v wantErr=%v", tc.name, pkgErr, tc.wantErr)
		}
		if !tc.wantErr && !reflect.DeepEqual(fromCmd, fromPkg) {
			t.Fatalf("%s: loaders disagree\n cmd: %+v\n pkg: %+v", tc.name, fromCmd, fromPkg)
		}
	}
}
