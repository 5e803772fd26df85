package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garagehq/gms/config"
	"github.com/garagehq/gms/errors"
)

// DbCmd represents the db (database) command
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the GMS database",
	Long: `db — Manage GMS database operations

Examples:
  gms db migrate     # Create or upgrade the database schema
  gms db stats       # Show record counts`,
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	RunE:  runDbMigrate,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE:  runDbStats,
}

func init() {
	DbCmd.AddCommand(dbMigrateCmd)
	DbCmd.AddCommand(dbStatsCmd)
}

func runDbMigrate(cmd *cobra.Command, args []string) error {
	// openDatabase migrates as part of opening
	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	fmt.Println("Database schema is up to date")
	return nil
}

func runDbStats(cmd *cobra.Command, args []string) error {
	path, err := config.GetDatabasePath()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	store, err := newStore(database)
	if err != nil {
		return err
	}

	stats, err := store.Counts(context.Background())
	if err != nil {
		return errors.Wrap(err, "failed to query database statistics")
	}

	fmt.Printf("Database Statistics\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	if path == "" {
		path = "gms.db"
	}
	fmt.Printf("Database Path: %s\n", path)
	fmt.Printf("Customers:     %d\n", stats.Customers)
	fmt.Printf("Vehicles:      %d\n", stats.Vehicles)
	fmt.Printf("Jobs:          %d\n", stats.Jobs)
	return nil
}
