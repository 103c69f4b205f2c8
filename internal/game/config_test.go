package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pymon.yaml")
	content := "seed: 3\nsave_file: mine.csv\nplain: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PYMON_SEED", "7")
	t.Setenv("PYMON_ACCENT", "#00FF00")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7 from the environment", cfg.Seed)
	}
	if cfg.SaveFile != "mine.csv" || !cfg.Plain {
		t.Errorf("YAML values not applied: %+v", cfg)
	}
	if cfg.Accent != "#00FF00" {
		t.Errorf("Accent = %q, want #00FF00", cfg.Accent)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info", cfg.LogLevel)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("PYMON_ACCENT", "orange")
	if _, err := LoadConfig(""); err == nil {
		t.Error("bad accent should fail")
	}

	t.Setenv("PYMON_ACCENT", "#FFA500")
	t.Setenv("PYMON_SEED", "abc")
	if _, err := LoadConfig(""); err == nil {
		t.Error("non-numeric seed should fail")
	}
}

func TestConfigFiles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LocationsFile = "l.csv"
	files := cfg.Files()
	if files.Locations != "l.csv" || files.Creatures != "" {
		t.Errorf("Files() = %+v", files)
	}
}

func TestNewLoggerDiscard(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogFile = "-"
	logger, err := cfg.NewLogger()
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	logger.Info("dropped")
}
