package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app" toml:"app"`
	Source  SourceConfig  `mapstructure:"source" toml:"source"`
	Catalog CatalogConfig `mapstructure:"catalog" toml:"catalog"`
	UI      UIConfig      `mapstructure:"ui" toml:"ui"`
	Keys    KeyConfig     `mapstructure:"keys" toml:"keys"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
}

type AppConfig struct {
	InitialFilter   string        `mapstructure:"initial_filter" toml:"initial_filter"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval" toml:"refresh_interval"`
}

// Source modes.
const (
	SourceFixture = "fixture"
	SourceHTTP    = "http"
	SourceCatalog = "catalog"
)

type SourceConfig struct {
	Mode        string        `mapstructure:"mode" toml:"mode"`
	BaseURL     string        `mapstructure:"base_url" toml:"base_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout" toml:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent" toml:"user_agent"`
	AllowLocal  bool          `mapstructure:"allow_local" toml:"allow_local"`
}

type CatalogConfig struct {
	Path        string        `mapstructure:"path" toml:"path"`
	Timeout     time.Duration `mapstructure:"timeout" toml:"timeout"`
	SearchLimit int           `mapstructure:"search_limit" toml:"search_limit"`
}

type UIConfig struct {
	Colors UIColors     `mapstructure:"colors" toml:"colors"`
	Detail DetailConfig `mapstructure:"detail" toml:"detail"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary" toml:"primary"`
	Secondary string `mapstructure:"secondary" toml:"secondary"`
	Accent    string `mapstructure:"accent" toml:"accent"`
	Text      string `mapstructure:"text" toml:"text"`
	Muted     string `mapstructure:"muted" toml:"muted"`
	Unread    string `mapstructure:"unread" toml:"unread"`
	Error     string `mapstructure:"error" toml:"error"`
}

type DetailConfig struct {
	// Style names a glamour style: auto, dark, light, notty, or a JSON file.
	Style            string `mapstructure:"style" toml:"style"`
	WordWrapMaxWidth int    `mapstructure:"word_wrap_max_width" toml:"word_wrap_max_width"`
	WordWrapMinWidth int    `mapstructure:"word_wrap_min_width" toml:"word_wrap_min_width"`
}

type KeyConfig struct {
	Bindings KeyBindings `mapstructure:"bindings" toml:"bindings"`
}

type KeyBindings struct {
	Quit       string `mapstructure:"quit" toml:"quit"`
	EditFilter string `mapstructure:"edit_filter" toml:"edit_filter"`
	Confirm    string `mapstructure:"confirm" toml:"confirm"`
	Refresh    string `mapstructure:"refresh" toml:"refresh"`
	AutoUpdate string `mapstructure:"auto_update" toml:"auto_update"`
	Up         string `mapstructure:"up" toml:"up"`
	Down       string `mapstructure:"down" toml:"down"`
}

type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	File  string `mapstructure:"file" toml:"file"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		App: AppConfig{
			InitialFilter:   "ocean",
			RefreshInterval: 5 * time.Second,
		},
		Source: SourceConfig{
			Mode:        SourceFixture,
			BaseURL:     "https://zaceno.github.io/hatut/data",
			HTTPTimeout: 10 * time.Second,
			UserAgent:   "hatut/1.0 (https://github.com/pders01/hatut)",
		},
		Catalog: CatalogConfig{
			Path:        filepath.Join(homeDir, ".hatut", "catalog.db"),
			Timeout:     1 * time.Second,
			SearchLimit: 50,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:   "#FF6B6B",
				Secondary: "#4ECDC4",
				Accent:    "#95E1D3",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Unread:    "#FFE66D",
				Error:     "#EF4444",
			},
			Detail: DetailConfig{
				Style:            "auto",
				WordWrapMaxWidth: 100,
				WordWrapMinWidth: 30,
			},
		},
		Keys: KeyConfig{
			Bindings: KeyBindings{
				Quit:       "q",
				EditFilter: "e",
				Confirm:    "enter",
				Refresh:    "r",
				AutoUpdate: "a",
				Up:         "k",
				Down:       "j",
			},
		},
		Log: LogConfig{
			Level: "off",
			File:  filepath.Join(homeDir, ".hatut", "hatut.log"),
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "hatut", "config.toml")
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("HATUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults registers every leaf key so that a file setting one key of a
// section keeps the defaults of its siblings.
func setDefaults(v *viper.Viper, cfg *Config) {
	defaults := map[string]interface{}{
		"app.initial_filter":   cfg.App.InitialFilter,
		"app.refresh_interval": cfg.App.RefreshInterval,

		"source.mode":         cfg.Source.Mode,
		"source.base_url":     cfg.Source.BaseURL,
		"source.http_timeout": cfg.Source.HTTPTimeout,
		"source.user_agent":   cfg.Source.UserAgent,
		"source.allow_local":  cfg.Source.AllowLocal,

		"catalog.path":         cfg.Catalog.Path,
		"catalog.timeout":      cfg.Catalog.Timeout,
		"catalog.search_limit": cfg.Catalog.SearchLimit,

		"ui.colors.primary":   cfg.UI.Colors.Primary,
		"ui.colors.secondary": cfg.UI.Colors.Secondary,
		"ui.colors.accent":    cfg.UI.Colors.Accent,
		"ui.colors.text":      cfg.UI.Colors.Text,
		"ui.colors.muted":     cfg.UI.Colors.Muted,
		"ui.colors.unread":    cfg.UI.Colors.Unread,
		"ui.colors.error":     cfg.UI.Colors.Error,

		"ui.detail.style":               cfg.UI.Detail.Style,
		"ui.detail.word_wrap_max_width": cfg.UI.Detail.WordWrapMaxWidth,
		"ui.detail.word_wrap_min_width": cfg.UI.Detail.WordWrapMinWidth,

		"keys.bindings.quit":        cfg.Keys.Bindings.Quit,
		"keys.bindings.edit_filter": cfg.Keys.Bindings.EditFilter,
		"keys.bindings.confirm":     cfg.Keys.Bindings.Confirm,
		"keys.bindings.refresh":     cfg.Keys.Bindings.Refresh,
		"keys.bindings.auto_update": cfg.Keys.Bindings.AutoUpdate,
		"keys.bindings.up":          cfg.Keys.Bindings.Up,
		"keys.bindings.down":        cfg.Keys.Bindings.Down,

		"log.level": cfg.Log.Level,
		"log.file":  cfg.Log.File,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// Validate rejects settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	switch c.Source.Mode {
	case SourceFixture, SourceHTTP, SourceCatalog:
	default:
		return fmt.Errorf("unknown source mode %q", c.Source.Mode)
	}
	if c.App.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %v", c.App.RefreshInterval)
	}
	if c.Source.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %v", c.Source.HTTPTimeout)
	}
	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Catalog.Path = expandPath(cfg.Catalog.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
}

// settings lays the config out the way it is written to disk, with
// durations as strings so the TOML stays readable.
func settings(config *Config) map[string]interface{} {
	return map[string]interface{}{
		"app": map[string]interface{}{
			"initial_filter":   config.App.InitialFilter,
			"refresh_interval": config.App.RefreshInterval.String(),
		},
		"source": map[string]interface{}{
			"mode":         config.Source.Mode,
			"base_url":     config.Source.BaseURL,
			"http_timeout": config.Source.HTTPTimeout.String(),
			"user_agent":   config.Source.UserAgent,
			"allow_local":  config.Source.AllowLocal,
		},
		"catalog": map[string]interface{}{
			"path":         config.Catalog.Path,
			"timeout":      config.Catalog.Timeout.String(),
			"search_limit": config.Catalog.SearchLimit,
		},
		"ui":   config.UI,
		"keys": config.Keys,
		"log":  config.Log,
	}
}

func Save(config *Config, path string) error {
	v := viper.New()
	for key, value := range settings(config) {
		v.Set(key, value)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

// Encode renders the config as TOML.
func Encode(config *Config) ([]byte, error) {
	data, err := toml.Marshal(settings(config))
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
