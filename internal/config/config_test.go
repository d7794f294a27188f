package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Drill.System != nil || cfg.Drill.Count != nil {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoad_EmptyPathIsAnError(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestLoad_ParsesAllSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[drill]
system = "wanikani"
mode = "onyomi"
count = 15
prioritize = true
jlpt-levels = [5, 4]
wk-levels = [1, 2, 3]

[data]
kanji = "/opt/kanji.json"
db = "/opt/kanjidrill.db"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Drill.System == nil || *cfg.Drill.System != "wanikani" {
		t.Errorf("System = %v", cfg.Drill.System)
	}
	if cfg.Drill.Mode == nil || *cfg.Drill.Mode != "onyomi" {
		t.Errorf("Mode = %v", cfg.Drill.Mode)
	}
	if cfg.Drill.Count == nil || *cfg.Drill.Count != 15 {
		t.Errorf("Count = %v", cfg.Drill.Count)
	}
	if cfg.Drill.Prioritize == nil || !*cfg.Drill.Prioritize {
		t.Errorf("Prioritize = %v", cfg.Drill.Prioritize)
	}
	if len(cfg.Drill.JLPTLevels) != 2 || cfg.Drill.JLPTLevels[0] != 5 {
		t.Errorf("JLPTLevels = %v", cfg.Drill.JLPTLevels)
	}
	if len(cfg.Drill.WKLevels) != 3 {
		t.Errorf("WKLevels = %v", cfg.Drill.WKLevels)
	}
	if cfg.Data.Kanji == nil || *cfg.Data.Kanji != "/opt/kanji.json" {
		t.Errorf("Kanji = %v", cfg.Data.Kanji)
	}
	if cfg.Data.DB == nil || *cfg.Data.DB != "/opt/kanjidrill.db" {
		t.Errorf("DB = %v", cfg.Data.DB)
	}
}

func TestLoad_PartialConfigLeavesRestUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[drill]\ncount = 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Drill.Count == nil || *cfg.Drill.Count != 8 {
		t.Errorf("Count = %v", cfg.Drill.Count)
	}
	if cfg.Drill.System != nil {
		t.Errorf("System = %v, want unset", *cfg.Drill.System)
	}
	if cfg.Data.DB != nil {
		t.Errorf("DB = %v, want unset", *cfg.Data.DB)
	}
}

func TestLoad_RejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[drill\ncount = 8"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestXDGPaths_EnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/conf")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")

	if got := DefaultConfigPath(); got != filepath.Join("/tmp/conf", "kanjidrill", "config.toml") {
		t.Errorf("DefaultConfigPath = %q", got)
	}
	if got := DefaultKanjiPath(); got != filepath.Join("/tmp/data", "kanjidrill", "kanji.json") {
		t.Errorf("DefaultKanjiPath = %q", got)
	}
}
