package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/garagehq/gms/config"
	"github.com/garagehq/gms/errors"
	"github.com/garagehq/gms/importer"
	"github.com/garagehq/gms/logger"
)

var (
	importDryRun    bool
	importThreshold float64
)

// ImportCmd represents the import command
var ImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import customer or vehicle CSV files",
	Long: `import — Deduplicating CSV import for legacy system exports.

Column headers are guessed fuzzily, so exports with headings like
"Moblie" or "Reg_No" still map correctly. Each row is matched against
existing records: decisive matches link to the existing record,
plausible matches are flagged for review, everything else is created.

Examples:
  gms import customers export.csv                 # Import customers
  gms import vehicles fleet.csv                   # Import vehicles
  gms import customers export.csv --dry-run       # Triage without writing`,
}

var importCustomersCmd = &cobra.Command{
	Use:   "customers FILE",
	Short: "Import a customer CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportCustomers,
}

var importVehiclesCmd = &cobra.Command{
	Use:   "vehicles FILE",
	Short: "Import a vehicle CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportVehicles,
}

func init() {
	ImportCmd.PersistentFlags().BoolVar(&importDryRun, "dry-run", false, "Triage every row without writing anything")
	ImportCmd.PersistentFlags().Float64Var(&importThreshold, "auto-link-threshold", 0, "Minimum score to auto-link a row to an existing record (0 uses the configured default)")

	ImportCmd.AddCommand(importCustomersCmd)
	ImportCmd.AddCommand(importVehiclesCmd)
}

func runImportCustomers(cmd *cobra.Command, args []string) error {
	return runImport(args[0], func(imp *importer.Importer, ctx context.Context, f *os.File) (importer.Report, error) {
		return imp.ImportCustomers(ctx, f)
	})
}

func runImportVehicles(cmd *cobra.Command, args []string) error {
	return runImport(args[0], func(imp *importer.Importer, ctx context.Context, f *os.File) (importer.Report, error) {
		return imp.ImportVehicles(ctx, f)
	})
}

func runImport(path string, run func(*importer.Importer, context.Context, *os.File) (importer.Report, error)) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()

	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	store, err := newStore(database)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	opts := importer.Options{
		AutoLinkThreshold: cfg.Import.AutoLinkThreshold,
		MaxHeaderDistance: cfg.Import.MaxHeaderDistance,
		DryRun:            importDryRun,
	}
	if importThreshold > 0 {
		opts.AutoLinkThreshold = importThreshold
	}

	imp := importer.NewWithOptions(store, logger.Logger, opts)

	report, err := run(imp, context.Background(), file)
	if err != nil {
		return err
	}

	if importDryRun {
		pterm.Printf("%s\n\n", pterm.Yellow("Dry run - nothing was written"))
	}
	fmt.Printf("Import batch %s\n", report.BatchID)
	fmt.Printf("  Rows:    %d\n", report.Rows)
	pterm.Printf("  %s %d\n", pterm.LightGreen("Created:"), report.Created)
	pterm.Printf("  %s  %d\n", pterm.LightCyan("Linked:"), report.Linked)
	if report.Review > 0 {
		pterm.Printf("  %s  %d\n", pterm.Yellow("Review:"), report.Review)
		for _, r := range report.ReviewRows {
			pterm.Printf("    %s row %d: %s matches record %d at %.0f%%\n",
				pterm.Gray("→"), r.Row, pterm.Yellow(r.Identity), r.MatchID, r.Score*100)
		}
	}
	if report.Skipped > 0 {
		pterm.Printf("  %s %d\n", pterm.Gray("Skipped:"), report.Skipped)
	}
	return nil
}
