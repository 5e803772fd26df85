package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garagehq/gms/config"
	"github.com/garagehq/gms/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show GMS configuration",
	Long: `config — Inspect and change GMS configuration

Configuration is layered: defaults, then /etc/gms/config.toml, then
~/.gms/config.toml, then a project gms.toml, then GMS_* environment
variables. 'config set' writes to the per-user file.

Examples:
  gms config show                      # Show effective configuration
  gms config get search.limit          # Show one effective value
  gms config path                      # Show per-user config file path
  gms config set search.limit 100      # Persist a setting`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Show one effective configuration value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetString(args[0]))
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the per-user config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.UserConfigPath())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Persist a setting to the per-user config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Set(args[0], args[1]); err != nil {
			return errors.Wrapf(err, "failed to set %s", args[0])
		}
		fmt.Printf("Set %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configPathCmd)
	ConfigCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	fmt.Printf("[database]\n")
	fmt.Printf("path = %q\n\n", cfg.Database.Path)

	fmt.Printf("[search]\n")
	fmt.Printf("limit = %d\n", cfg.Search.Limit)
	fmt.Printf("min_score = %g\n", cfg.Search.MinScore)
	fmt.Printf("working_set = %d\n", cfg.Search.WorkingSet)
	fmt.Printf("min_query_len = %d\n\n", cfg.Search.MinQueryLen)

	fmt.Printf("[linkage]\n")
	fmt.Printf("customer_threshold = %g\n", cfg.Linkage.CustomerThreshold)
	fmt.Printf("vehicle_threshold = %g\n\n", cfg.Linkage.VehicleThreshold)

	fmt.Printf("[import]\n")
	fmt.Printf("auto_link_threshold = %g\n", cfg.Import.AutoLinkThreshold)
	fmt.Printf("max_header_distance = %d\n", cfg.Import.MaxHeaderDistance)
	return nil
}
