// Package config holds the layered GMS configuration.
//
// Precedence (lowest to highest): defaults < /etc/gms/config.toml <
// ~/.gms/config.toml < project gms.toml < GMS_* environment variables.
package config

// Config represents the core GMS configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Search   SearchConfig   `mapstructure:"search"`
	Linkage  LinkageConfig  `mapstructure:"linkage"`
	Import   ImportConfig   `mapstructure:"import"`
}

// DatabaseConfig configures the SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SearchConfig configures free-text search behaviour
type SearchConfig struct {
	Limit       int     `mapstructure:"limit"`         // max results returned (default: 50)
	MinScore    float64 `mapstructure:"min_score"`     // relevance floor, results at or below are dropped (default: 0.3)
	WorkingSet  int     `mapstructure:"working_set"`   // most-recent rows loaded per search (default: 1000)
	MinQueryLen int     `mapstructure:"min_query_len"` // queries shorter than this return empty (default: 2)
}

// LinkageConfig configures record-linkage (deduplication) thresholds.
// Vehicle linkage is stricter than customer linkage: registrations must
// be near-exact before a pair is even considered.
type LinkageConfig struct {
	CustomerThreshold float64 `mapstructure:"customer_threshold"` // default: 0.8
	VehicleThreshold  float64 `mapstructure:"vehicle_threshold"`  // default: 0.9
}

// ImportConfig configures the GA4 CSV import pipeline
type ImportConfig struct {
	AutoLinkThreshold float64 `mapstructure:"auto_link_threshold"` // top match at/above this links automatically (default: 0.9)
	MaxHeaderDistance int     `mapstructure:"max_header_distance"` // levenshtein cut for column guessing (default: 2)
}
