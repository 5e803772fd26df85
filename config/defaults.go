package config

import (
	"github.com/spf13/viper"
)

// Default file permissions for the ~/.gms directory
const DefaultDirPermissions = 0750

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "gms.db")

	// Search defaults
	v.SetDefault("search.limit", 50)
	v.SetDefault("search.min_score", 0.3)
	v.SetDefault("search.working_set", 1000)
	v.SetDefault("search.min_query_len", 2)

	// Linkage defaults
	v.SetDefault("linkage.customer_threshold", 0.8)
	v.SetDefault("linkage.vehicle_threshold", 0.9) // registration must be near-exact

	// Import defaults
	v.SetDefault("import.auto_link_threshold", 0.9)
	v.SetDefault("import.max_header_distance", 2)
}
