package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Scraper.MaxItems < 1 {
		return fmt.Errorf("scraper.max_items must be >= 1, got %d", cfg.Scraper.MaxItems)
	}
	if cfg.Scraper.MaxNameLength < 1 {
		return fmt.Errorf("scraper.max_name_length must be >= 1, got %d", cfg.Scraper.MaxNameLength)
	}
	if cfg.Scraper.DedupPrefixLength < 1 {
		return fmt.Errorf("scraper.dedup_prefix_length must be >= 1, got %d", cfg.Scraper.DedupPrefixLength)
	}
	if cfg.Scraper.MinScore < 0 {
		return fmt.Errorf("scraper.min_score must be >= 0, got %d", cfg.Scraper.MinScore)
	}

	if cfg.Validator.MinTitleLength < 1 {
		return fmt.Errorf("validator.min_title_length must be >= 1, got %d", cfg.Validator.MinTitleLength)
	}
	if cfg.Validator.MaxTitleLength <= cfg.Validator.MinTitleLength {
		return fmt.Errorf("validator.max_title_length must be > min_title_length")
	}
	if cfg.Validator.MinPrice < 0 {
		return fmt.Errorf("validator.min_price must be >= 0")
	}

	if cfg.Fetcher.Timeout <= 0 {
		return fmt.Errorf("fetcher.timeout must be > 0")
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}
	if cfg.Fetcher.MaxRedirects < 0 {
		return fmt.Errorf("fetcher.max_redirects must be >= 0")
	}

	if cfg.Backend.URL != "" {
		if _, err := url.Parse(cfg.Backend.URL); err != nil {
			return fmt.Errorf("invalid backend.url %q: %w", cfg.Backend.URL, err)
		}
	}
	if cfg.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be > 0")
	}

	if cfg.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0")
	}

	validStorageTypes := map[string]bool{
		"json": true, "jsonl": true, "csv": true, "mongodb": true,
	}
	if !validStorageTypes[cfg.Storage.Type] {
		return fmt.Errorf("storage.type %q is not supported (valid: json, jsonl, csv, mongodb)", cfg.Storage.Type)
	}
	if cfg.Storage.Type == "mongodb" && cfg.Storage.MongoURI == "" {
		return fmt.Errorf("storage.mongo_uri is required for mongodb storage")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks if a URL string is a usable page address.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
