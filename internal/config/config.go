package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for ShopScout.
type Config struct {
	Scraper   ScraperConfig   `mapstructure:"scraper"   yaml:"scraper"`
	Validator ValidatorConfig `mapstructure:"validator" yaml:"validator"`
	Fetcher   FetcherConfig   `mapstructure:"fetcher"   yaml:"fetcher"`
	Browser   BrowserConfig   `mapstructure:"browser"   yaml:"browser"`
	Backend   BackendConfig   `mapstructure:"backend"   yaml:"backend"`
	Cache     CacheConfig     `mapstructure:"cache"     yaml:"cache"`
	Storage   StorageConfig   `mapstructure:"storage"   yaml:"storage"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// ScraperConfig controls the extraction orchestrator.
type ScraperConfig struct {
	MaxItems          int `mapstructure:"max_items"           yaml:"max_items"`
	MaxNameLength     int `mapstructure:"max_name_length"     yaml:"max_name_length"`
	DedupPrefixLength int `mapstructure:"dedup_prefix_length" yaml:"dedup_prefix_length"`
	MinScore          int `mapstructure:"min_score"           yaml:"min_score"`
}

// ValidatorConfig controls candidate validity heuristics.
type ValidatorConfig struct {
	MinTitleLength int `mapstructure:"min_title_length" yaml:"min_title_length"`
	MaxTitleLength int `mapstructure:"max_title_length" yaml:"max_title_length"`

	// MinPrice is a noise floor in the smallest conventional currency unit.
	// It is a fixed heuristic tuned for one market, not currency-aware.
	MinPrice float64 `mapstructure:"min_price" yaml:"min_price"`
}

// FetcherConfig controls the HTTP page fetcher.
type FetcherConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"          yaml:"timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"    yaml:"max_body_size"`
	FollowRedirects bool          `mapstructure:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects    int           `mapstructure:"max_redirects"    yaml:"max_redirects"`
	UserAgent       string        `mapstructure:"user_agent"       yaml:"user_agent"`
}

// BrowserConfig controls the headless browser page source.
type BrowserConfig struct {
	Enabled           bool          `mapstructure:"enabled"            yaml:"enabled"`
	Headless          bool          `mapstructure:"headless"           yaml:"headless"`
	Stealth           bool          `mapstructure:"stealth"            yaml:"stealth"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	StableWait        time.Duration `mapstructure:"stable_wait"        yaml:"stable_wait"`
}

// BackendConfig controls the answer backend client.
type BackendConfig struct {
	URL     string        `mapstructure:"url"     yaml:"url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// CacheConfig controls result memoization.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// StorageConfig controls optional result archiving.
type StorageConfig struct {
	Type            string `mapstructure:"type"             yaml:"type"`
	OutputPath      string `mapstructure:"output_path"      yaml:"output_path"`
	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scraper: ScraperConfig{
			MaxItems:          50,
			MaxNameLength:     120,
			DedupPrefixLength: 50,
			MinScore:          40,
		},
		Validator: ValidatorConfig{
			MinTitleLength: 20,
			MaxTitleLength: 250,
			MinPrice:       50,
		},
		Fetcher: FetcherConfig{
			Timeout:         30 * time.Second,
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			FollowRedirects: true,
			MaxRedirects:    10,
			UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		Browser: BrowserConfig{
			Headless:          true,
			Stealth:           true,
			NavigationTimeout: 30 * time.Second,
			StableWait:        300 * time.Millisecond,
		},
		Backend: BackendConfig{
			URL:     "http://127.0.0.1:8080/chat",
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Storage: StorageConfig{
			Type:            "json",
			OutputPath:      "./output",
			MongoDatabase:   "shopscout",
			MongoCollection: "scrapes",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
