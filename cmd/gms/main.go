package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/garagehq/gms/cmd/gms/commands"
	"github.com/garagehq/gms/logger"
)

var rootCmd = &cobra.Command{
	Use:   "gms",
	Short: "GMS - Garage management search and import",
	Long: `GMS - Fuzzy search and deduplicating import for garage records.

GMS keeps customers, vehicles and jobs in a local SQLite database and
answers free-text queries with typo-tolerant relevance ranking. The
importer reads CSV exports of legacy systems and deduplicates each row
against existing records before inserting.

Available commands:
  search  - Fuzzy search customers, vehicles or jobs
  import  - Import customer or vehicle CSV files
  db      - Manage the GMS database
  config  - Show GMS configuration

Examples:
  gms search customers "jane smith"    # Typo-tolerant customer search
  gms search vehicles AB12CDE          # Search by registration
  gms import customers export.csv      # Deduplicating CSV import
  gms db stats                         # Show record counts`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON instead of console output")

	rootCmd.AddCommand(commands.SearchCmd)
	rootCmd.AddCommand(commands.ImportCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
