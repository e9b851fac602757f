package config

import (
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Version:  "v0.1.1",
			BaseURL:  "https://github.com/gruntwork-io/fetch/releases/download/",
			BinDir:   "/opt/fetchbin",
			LogLevel: "info",
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty version", func(c *Config) { c.Version = " " }, "version"},
		{"version with space", func(c *Config) { c.Version = "v0.1 .1" }, "version"},
		{"non http url", func(c *Config) { c.BaseURL = "file:///tmp" }, "base_url"},
		{"url without host", func(c *Config) { c.BaseURL = "https://" }, "base_url"},
		{"empty bin dir", func(c *Config) { c.BinDir = "" }, "bin_dir"},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"uppercase log level", func(c *Config) { c.LogLevel = "DEBUG" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", vErr.Field, tt.wantField)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
	if cfg.BinDir == "" {
		t.Error("Default BinDir should not be empty")
	}
}
