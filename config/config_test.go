package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marsdev/ctxbench/config"
	"github.com/marsdev/ctxbench/tokenizer"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Target != config.DefaultTargetDir {
		t.Errorf("Target = %q, want %q", cfg.Target, config.DefaultTargetDir)
	}
	if cfg.Tokenizer.Encoding != tokenizer.DefaultEncoding {
		t.Errorf("Encoding = %q, want %q", cfg.Tokenizer.Encoding, tokenizer.DefaultEncoding)
	}
	if !cfg.History.Enabled {
		t.Errorf("History.Enabled = false, want true by default")
	}
	if cfg.Report.Plain {
		t.Errorf("Report.Plain = true, want false by default")
	}
}

func TestLoad_PartialOverrideKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "target: /srv/code\nreport:\n  plain: true\n")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Target != "/srv/code" {
		t.Errorf("Target = %q, want /srv/code", cfg.Target)
	}
	if !cfg.Report.Plain {
		t.Errorf("Report.Plain = false, want true from file")
	}
	if cfg.Tokenizer.Encoding != tokenizer.DefaultEncoding {
		t.Errorf("Encoding = %q, want default to survive partial file", cfg.Tokenizer.Encoding)
	}
	if !cfg.History.Enabled {
		t.Errorf("History.Enabled = false, want default true to survive partial file")
	}
}

func TestLoad_DisableHistory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "history:\n  enabled: false\n")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History.Enabled {
		t.Errorf("History.Enabled = true, want false from file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "target: [unclosed\n")

	if _, err := config.Load(dir); err == nil {
		t.Fatal("expected parse error for invalid YAML")
	}
}
