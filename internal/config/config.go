package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const appName = "cassist"

type Config struct {
	Storage    string    `mapstructure:"storage" json:"storage"` // "file", "sqlite"
	CellWidth  float64   `mapstructure:"cell_width" json:"cell_width"`
	CellHeight float64   `mapstructure:"cell_height" json:"cell_height"`
	Theme      string    `mapstructure:"theme" json:"theme,omitempty"` // overrides the stored theme when set
	Log        LogConfig `mapstructure:"log" json:"log"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"` // "console", "json"
}

func DefaultConfig() Config {
	return Config{
		Storage:    "file",
		CellWidth:  8,
		CellHeight: 16,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", appName)
	}
	return filepath.Join(home, ".local", "share", appName)
}

func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, _ := os.UserHomeDir()
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", appName)
	}
	return filepath.Join(home, ".local", "state", appName)
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")

	def := DefaultConfig()
	v.SetDefault("storage", def.Storage)
	v.SetDefault("cell_width", def.CellWidth)
	v.SetDefault("cell_height", def.CellHeight)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	// CASSIST_STORAGE, CASSIST_LOG_LEVEL, ...
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads config.json and CASSIST_* environment overrides. A missing or
// malformed file is ignored and invalid values fall back to their defaults.
func Load() Config {
	v := newViper()
	v.SetConfigFile(ConfigPath())
	if err := v.ReadInConfig(); err != nil {
		v = newViper() // ignore errors; fall back to defaults + env
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		cfg = DefaultConfig()
	}
	return normalize(cfg)
}

func normalize(cfg Config) Config {
	def := DefaultConfig()
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	if cfg.Storage != "file" && cfg.Storage != "sqlite" {
		cfg.Storage = def.Storage
	}
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = def.CellWidth
	}
	if cfg.CellHeight <= 0 {
		cfg.CellHeight = def.CellHeight
	}
	switch cfg.Theme {
	case "", "system", "light", "dark":
	default:
		cfg.Theme = ""
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		cfg.Log.Format = def.Log.Format
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	return cfg
}

func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath(), data, 0o644)
}
