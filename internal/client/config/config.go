package config

import "time"

// Config holds runtime settings for the shopcore client.
//
// Fields:
//   - APIBaseURL: base URL of the product catalog backend.
//   - RequestTimeout: per-request timeout for catalog calls.
//   - DatabaseDSN: path/DSN of the local SQLite database.
//   - PageLimit: number of products requested per page.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabaseDSN    string
	PageLimit      int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://api.escuelajs.co/api/v1"
	c.RequestTimeout = 10 * time.Second
	c.DatabaseDSN = "shopcore.db"
	c.PageLimit = 10
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
