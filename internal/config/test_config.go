package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.App.RefreshInterval = 50 * time.Millisecond
	cfg.Source.HTTPTimeout = 2 * time.Second
	cfg.Source.UserAgent = "hatut-test/1.0"
	cfg.Source.AllowLocal = true
	cfg.Catalog.Path = ""
	cfg.UI.Detail.Style = "notty"
	cfg.Log.Level = "off"
	cfg.Log.File = ""
	return cfg
}
