package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ServerName and Version identify the tool server to MCP hosts.
const (
	ServerName = "Gembridge"
	Version    = "0.1.0"
)

type Config struct {
	Gemini  GeminiConfig  `mapstructure:"gemini"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Context ContextConfig `mapstructure:"context"`
	Theme   ThemeConfig   `mapstructure:"theme"`

	// TemplatesDir holds custom prompt templates as YAML files.
	// Empty means builtins only.
	TemplatesDir string `mapstructure:"templates_dir"`
}

// GeminiConfig shapes how the CLI binary is invoked by default.
type GeminiConfig struct {
	Model           string   `mapstructure:"model"`
	FallbackModels  []string `mapstructure:"fallback_models"`
	Sandbox         bool     `mapstructure:"sandbox"`
	Debug           bool     `mapstructure:"debug"`
	AllFiles        bool     `mapstructure:"all_files"`
	ShowMemoryUsage bool     `mapstructure:"show_memory_usage"`
	AutoAccept      bool     `mapstructure:"auto_accept"`
	Checkpointing   bool     `mapstructure:"checkpointing"`
}

// CacheConfig controls the local response cache.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
	Path       string `mapstructure:"path"` // override db location
}

// ContextConfig caps what gets staged for the subprocess.
type ContextConfig struct {
	MaxFileSizeMB float64 `mapstructure:"max_file_size_mb"`
	MaxFiles      int     `mapstructure:"max_files"`
}

// ThemeConfig allows customization of UI colors.
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB)
type ThemeConfig struct {
	Primary   string `mapstructure:"primary"`   // main accent (commands, highlights)
	Secondary string `mapstructure:"secondary"` // secondary accent (headers, borders)
	Success   string `mapstructure:"success"`   // success states
	Error     string `mapstructure:"error"`     // error states
	Warning   string `mapstructure:"warning"`   // warnings
	Muted     string `mapstructure:"muted"`     // dimmed text
	Text      string `mapstructure:"text"`      // primary text
	Spinner   string `mapstructure:"spinner"`   // loading spinner
}

func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(expandEnv(path))
	} else {
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config dir: %w", err)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetDefault("gemini.model", "gemini-3-pro-preview")
	v.SetDefault("gemini.fallback_models", []string{"gemini-2.5-pro"})
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl_seconds", 3600)
	v.SetDefault("context.max_file_size_mb", 10.0)
	v.SetDefault("context.max_files", 20)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.TemplatesDir = expandEnv(cfg.TemplatesDir)
	cfg.Cache.Path = expandEnv(cfg.Cache.Path)
	return &cfg, nil
}

// ApplyOverrides applies command-line overrides to the loaded config.
func (c *Config) ApplyOverrides(model string, sandbox, debug bool) {
	if model != "" {
		c.Gemini.Model = model
	}
	if sandbox {
		c.Gemini.Sandbox = true
	}
	if debug {
		c.Gemini.Debug = true
	}
}

func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	if strings.HasPrefix(s, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, s[2:])
		}
	}
	return s
}

// GetConfigDir returns the XDG config directory for gembridge.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "gembridge"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "gembridge"), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// GetCacheDir returns the XDG cache directory for gembridge.
func GetCacheDir() (string, error) {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "gembridge"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".cache", "gembridge"), nil
}

// Save writes a commented starter config to the standard location.
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content := fmt.Sprintf(`gemini:
  model: %s
  fallback_models:
%s  # sandbox: true
  # auto_accept: true

cache:
  enabled: %t
  ttl_seconds: %d

context:
  max_file_size_mb: %g
  max_files: %d

# Custom prompt templates (YAML files, one template per file)
# templates_dir: ~/.config/gembridge/templates
`,
		cfg.Gemini.Model,
		formatFallbacks(cfg.Gemini.FallbackModels),
		cfg.Cache.Enabled,
		cfg.Cache.TTLSeconds,
		cfg.Context.MaxFileSizeMB,
		cfg.Context.MaxFiles,
	)
	return os.WriteFile(path, []byte(content), 0644)
}

func formatFallbacks(models []string) string {
	var b strings.Builder
	for _, m := range models {
		fmt.Fprintf(&b, "    - %s\n", m)
	}
	return b.String()
}
