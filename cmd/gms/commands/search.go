package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/garagehq/gms/errors"
	"github.com/garagehq/gms/match"
)

var (
	searchLimit  int
	searchFormat string
)

// SearchCmd represents the search command
var SearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Fuzzy search customers, vehicles or jobs",
	Long: `search — Typo-tolerant free-text search over garage records.

Queries match across every identifying field: names, phone numbers in
any common UK form, registrations with or without spacing, postcodes,
emails and account numbers. Results are ranked by relevance.

Examples:
  gms search customers "jane smith"     # Name search, typo tolerant
  gms search customers 07911123456      # Phone in any form
  gms search vehicles "AB12 CDE"        # Registration, spacing ignored
  gms search jobs brake                 # Job description keywords`,
}

var searchCustomersCmd = &cobra.Command{
	Use:   "customers QUERY...",
	Short: "Search customers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchCustomers,
}

var searchVehiclesCmd = &cobra.Command{
	Use:   "vehicles QUERY...",
	Short: "Search vehicles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchVehicles,
}

var searchJobsCmd = &cobra.Command{
	Use:   "jobs QUERY...",
	Short: "Search jobs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchJobs,
}

func init() {
	SearchCmd.PersistentFlags().IntVarP(&searchLimit, "limit", "l", 0, "Maximum number of results (0 uses the configured default)")
	SearchCmd.PersistentFlags().StringVarP(&searchFormat, "format", "f", "table", "Output format (table/json)")

	SearchCmd.AddCommand(searchCustomersCmd)
	SearchCmd.AddCommand(searchVehiclesCmd)
	SearchCmd.AddCommand(searchJobsCmd)
}

func runSearchCustomers(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	store, err := newStore(database)
	if err != nil {
		return err
	}

	results, err := store.SearchCustomers(context.Background(), query, searchLimit)
	if err != nil {
		return errors.Wrap(err, "customer search failed")
	}

	if searchFormat == "json" {
		return displayJSON(results)
	}

	fmt.Printf("Found %d customers\n\n", len(results))
	for _, r := range results {
		pterm.Printf("%s  %s\n", pterm.LightGreen(r.Name), scoreLabel(r.SearchScore))
		printField("Account", r.AccountNumber)
		printField("Mobile", r.Mobile)
		printField("Phone", r.Phone)
		printField("Email", r.Email)
		printField("Postcode", r.Postcode)
		printField("Address", r.Address)
		fmt.Println()
	}
	return nil
}

func runSearchVehicles(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	store, err := newStore(database)
	if err != nil {
		return err
	}

	results, err := store.SearchVehicles(context.Background(), query, searchLimit)
	if err != nil {
		return errors.Wrap(err, "vehicle search failed")
	}

	if searchFormat == "json" {
		return displayJSON(results)
	}

	fmt.Printf("Found %d vehicles\n\n", len(results))
	for _, r := range results {
		pterm.Printf("%s  %s\n", pterm.LightGreen(r.Registration), scoreLabel(r.SearchScore))
		printField("Make", r.Make)
		printField("Model", r.Model)
		if r.Year != 0 {
			printField("Year", fmt.Sprintf("%d", r.Year))
		}
		printField("Color", r.Color)
		printField("Owner", r.CustomerName)
		fmt.Println()
	}
	return nil
}

func runSearchJobs(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	store, err := newStore(database)
	if err != nil {
		return err
	}

	results, err := store.SearchJobs(context.Background(), query, searchLimit)
	if err != nil {
		return errors.Wrap(err, "job search failed")
	}

	if searchFormat == "json" {
		return displayJSON(results)
	}

	fmt.Printf("Found %d jobs\n\n", len(results))
	for _, r := range results {
		pterm.Printf("%s  %s\n", pterm.LightGreen(jobTitle(r.Job)), scoreLabel(r.SearchScore))
		printField("Status", r.Status)
		printField("Description", r.Description)
		printField("Customer", r.CustomerName)
		printField("Vehicle", r.VehicleRegistration)
		printField("Technician", r.AssignedTechnician)
		fmt.Println()
	}
	return nil
}

func jobTitle(j match.Job) string {
	if j.JobNumber != "" {
		return j.JobNumber
	}
	return fmt.Sprintf("job %d", j.ID)
}

func scoreLabel(score float64) string {
	return pterm.Gray(fmt.Sprintf("(%.0f%%)", score*100))
}

// printField prints an aligned detail line, skipping empty values.
func printField(label, value string) {
	if value == "" {
		return
	}
	pterm.Printf("  %s %s\n", pterm.Gray(fmt.Sprintf("%-12s", label+":")), value)
}

func displayJSON(results interface{}) error {
	output, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to format results as JSON")
	}
	fmt.Println(string(output))
	return nil
}
