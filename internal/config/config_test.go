package config

import (
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max items", func(c *Config) { c.Scraper.MaxItems = 0 }},
		{"negative min score", func(c *Config) { c.Scraper.MinScore = -1 }},
		{"inverted title window", func(c *Config) { c.Validator.MaxTitleLength = c.Validator.MinTitleLength }},
		{"zero fetch timeout", func(c *Config) { c.Fetcher.Timeout = 0 }},
		{"zero cache ttl", func(c *Config) { c.Cache.TTL = 0 }},
		{"unknown storage type", func(c *Config) { c.Storage.Type = "parquet" }},
		{"mongodb without uri", func(c *Config) { c.Storage.Type = "mongodb"; c.Storage.MongoURI = "" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	good := []string{
		"https://www.amazon.in/s?k=phones",
		"http://localhost:8080/listing",
	}
	for _, u := range good {
		if err := ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) = %v", u, err)
		}
	}

	bad := []string{
		"",
		"ftp://example.com/file",
		"not a url at all",
		"https://",
	}
	for _, u := range bad {
		if err := ValidateURL(u); err == nil {
			t.Errorf("ValidateURL(%q) should fail", u)
		}
	}
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scraper.MaxItems != 50 {
		t.Errorf("MaxItems = %d, want 50", cfg.Scraper.MaxItems)
	}
	if cfg.Cache.TTL != DefaultConfig().Cache.TTL {
		t.Errorf("TTL = %v", cfg.Cache.TTL)
	}
}

func TestLoadAppliesEnvOverride(t *testing.T) {
	t.Setenv("SHOPSCOUT_SCRAPER_MAX_ITEMS", "7")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scraper.MaxItems != 7 {
		t.Errorf("env override ignored, MaxItems = %d", cfg.Scraper.MaxItems)
	}
}
