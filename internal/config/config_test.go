package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gemini.Model != "gemini-3-pro-preview" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
	if len(cfg.Gemini.FallbackModels) != 1 || cfg.Gemini.FallbackModels[0] != "gemini-2.5-pro" {
		t.Errorf("fallback_models = %v", cfg.Gemini.FallbackModels)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTLSeconds != 3600 {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
	if cfg.Context.MaxFileSizeMB != 10.0 || cfg.Context.MaxFiles != 20 {
		t.Errorf("context defaults = %+v", cfg.Context)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `gemini:
  model: gemini-custom
  fallback_models:
    - one
    - two
  sandbox: true
cache:
  enabled: false
context:
  max_files: 5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gemini.Model != "gemini-custom" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
	if len(cfg.Gemini.FallbackModels) != 2 {
		t.Errorf("fallback_models = %v", cfg.Gemini.FallbackModels)
	}
	if !cfg.Gemini.Sandbox {
		t.Error("sandbox not picked up")
	}
	if cfg.Cache.Enabled {
		t.Error("cache.enabled override not picked up")
	}
	if cfg.Context.MaxFiles != 5 {
		t.Errorf("max_files = %d", cfg.Context.MaxFiles)
	}
	// Unset keys keep their defaults.
	if cfg.Context.MaxFileSizeMB != 10.0 {
		t.Errorf("max_file_size_mb = %g", cfg.Context.MaxFileSizeMB)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := &Config{}
	cfg.Gemini.Model = "base"
	cfg.ApplyOverrides("cli-model", true, false)
	if cfg.Gemini.Model != "cli-model" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
	if !cfg.Gemini.Sandbox || cfg.Gemini.Debug {
		t.Errorf("flags = %+v", cfg.Gemini)
	}

	// Empty overrides leave config untouched.
	cfg.ApplyOverrides("", false, false)
	if cfg.Gemini.Model != "cli-model" || !cfg.Gemini.Sandbox {
		t.Errorf("config mutated by empty overrides: %+v", cfg.Gemini)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("GEMBRIDGE_TEST_DIR", "/tmp/tpl")
	tests := []struct {
		in   string
		want string
	}{
		{"${GEMBRIDGE_TEST_DIR}", "/tmp/tpl"},
		{"$GEMBRIDGE_TEST_DIR", "/tmp/tpl"},
		{"/plain/path", "/plain/path"},
	}
	for _, tt := range tests {
		if got := expandEnv(tt.in); got != tt.want {
			t.Errorf("expandEnv(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
