package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	data := "settleDelayMs: 250\nlogLevel: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if cfg.SettleDelayMS != 250 || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.PropagateDelayMS != DefaultConfig().PropagateDelayMS {
		t.Error("unset fields should keep their defaults")
	}
	if got := cfg.settleDelay(); got != 250*time.Millisecond {
		t.Errorf("settleDelay = %v", got)
	}
}

func TestLoadConfigSanitizesNonPositiveValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	data := "settleDelayMs: -1\nhistoryCapacity: 0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	def := DefaultConfig()
	if cfg.SettleDelayMS != def.SettleDelayMS || cfg.HistoryCapacity != def.HistoryCapacity {
		t.Errorf("cfg = %+v, want sanitized to defaults", cfg)
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected a parse error")
	}
}
