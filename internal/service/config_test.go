package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/wfdash/internal/config"
)

func TestConfigService_GetAndPath(t *testing.T) {
	cfg := config.DefaultConfig()
	svc := NewConfigService("/tmp/test/config.toml", cfg)

	if svc.Get() != cfg {
		t.Errorf("Get() = %+v, expected %+v", svc.Get(), cfg)
	}
	if svc.GetPath() != "/tmp/test/config.toml" {
		t.Errorf("GetPath() = %q", svc.GetPath())
	}
}

func TestConfigService_Exists(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	if svc.Exists() {
		t.Error("expected Exists() to return false")
	}

	if err := os.WriteFile(configPath, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if !svc.Exists() {
		t.Error("expected Exists() to return true")
	}
}

func TestConfigService_Update(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	newCfg := config.DefaultConfig()
	newCfg.APIBaseURL = "https://work.example.com/"
	newCfg.TimesheetDays = 14

	if err := svc.Update(newCfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if svc.Get().APIBaseURL != "https://work.example.com" {
		t.Errorf("in-memory APIBaseURL = %q, expected normalized value", svc.Get().APIBaseURL)
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("failed to load written config: %v", err)
	}
	if loaded.TimesheetDays != 14 {
		t.Errorf("written TimesheetDays = %d, expected 14", loaded.TimesheetDays)
	}
}

func TestConfigService_UpdateInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	bad := config.DefaultConfig()
	bad.TimesheetDays = 9

	err := svc.Update(bad)
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Fatalf("Update() error = %v, expected invalid configuration", err)
	}
	if svc.Exists() {
		t.Error("invalid config must not be written")
	}
	if svc.Get().TimesheetDays != 7 {
		t.Error("invalid config must not replace the in-memory config")
	}
}

func TestConfigService_SetTheme(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	if err := svc.SetTheme("Nord"); err != nil {
		t.Fatalf("SetTheme() error = %v", err)
	}
	if svc.Get().Theme != "nord" {
		t.Errorf("Theme = %q, expected nord", svc.Get().Theme)
	}
}

func TestConfigService_Init(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	if err := svc.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}
	if !strings.Contains(string(data), "# wfdash configuration file") {
		t.Error("sample config header missing")
	}

	if err := svc.Init(); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second Init() error = %v, expected already exists", err)
	}
}
