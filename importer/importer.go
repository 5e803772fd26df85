// Package importer loads customer and vehicle records from CSV exports
// of the legacy GA4 desktop system. Column headers drift between GA4
// versions, so they are guessed fuzzily. Each row is deduplicated
// against existing records and the outcome is tallied into a batch
// report.
package importer

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/garagehq/gms/errors"
	"github.com/garagehq/gms/match"
	"github.com/garagehq/gms/storage"
)

// Options control row triage during an import.
type Options struct {
	// AutoLinkThreshold is the minimum dedup score at which an incoming
	// row is treated as an existing record. Rows matching above the
	// store's linkage threshold but below this one land in review.
	AutoLinkThreshold float64

	// MaxHeaderDistance is the edit-distance budget for header guessing.
	MaxHeaderDistance int

	// DryRun triages every row without writing anything.
	DryRun bool
}

// DefaultOptions returns the production import defaults.
func DefaultOptions() Options {
	return Options{
		AutoLinkThreshold: 0.9,
		MaxHeaderDistance: 2,
	}
}

// ReviewRow identifies an import row whose best match cleared the
// linkage threshold but not the auto-link threshold. The row was not
// written; someone has to decide whether it is the matched record.
type ReviewRow struct {
	Row      int    // 1-based data row number, header excluded
	Identity string // how the row identifies itself
	MatchID  int64  // existing record it plausibly matches
	Score    float64
}

// Report tallies the outcome of one import batch.
type Report struct {
	BatchID    string
	Rows       int
	Created    int
	Linked     int
	Review     int
	Skipped    int
	ReviewRows []ReviewRow
}

// Importer reads CSV rows and routes them through the store's
// deduplication before inserting.
type Importer struct {
	store  *storage.Store
	logger *zap.SugaredLogger
	opts   Options
}

// New creates an importer with production defaults.
func New(store *storage.Store, logger *zap.SugaredLogger) *Importer {
	return NewWithOptions(store, logger, DefaultOptions())
}

// NewWithOptions creates an importer with explicit options. Zero option
// values fall back to the defaults.
func NewWithOptions(store *storage.Store, logger *zap.SugaredLogger, opts Options) *Importer {
	defaults := DefaultOptions()
	if opts.AutoLinkThreshold <= 0 {
		opts.AutoLinkThreshold = defaults.AutoLinkThreshold
	}
	if opts.MaxHeaderDistance <= 0 {
		opts.MaxHeaderDistance = defaults.MaxHeaderDistance
	}
	return &Importer{store: store, logger: logger, opts: opts}
}

// ImportCustomers reads a customer CSV and triages each row: link to an
// existing customer, flag for review, or create. The header row is
// required and must contain at least one identifying column.
func (imp *Importer) ImportCustomers(ctx context.Context, r io.Reader) (Report, error) {
	report := Report{BatchID: uuid.NewString()}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return report, errors.NewInvalidInputError("reading CSV header: %v", err)
	}

	cols := GuessColumns(headers, customerColumnAliases, imp.opts.MaxHeaderDistance)
	if !hasAny(cols, "name", "mobile", "phone", "email", "account_number") {
		return report, errors.NewInvalidInputError("no identifying customer column recognized in header %v", headers)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed rows are counted and skipped, not fatal
			if _, ok := err.(*csv.ParseError); ok {
				report.Rows++
				report.Skipped++
				continue
			}
			return report, errors.Wrap(err, "failed to read CSV row")
		}
		report.Rows++

		candidate := match.Customer{
			AccountNumber: field(record, cols, "account_number"),
			Name:          field(record, cols, "name"),
			Phone:         field(record, cols, "phone"),
			Mobile:        field(record, cols, "mobile"),
			Email:         field(record, cols, "email"),
			Postcode:      field(record, cols, "postcode"),
			Address:       field(record, cols, "address"),
		}
		if customerBlank(candidate) {
			report.Skipped++
			continue
		}

		matches, err := imp.store.FindCustomerMatches(ctx, candidate)
		if err != nil {
			return report, err
		}

		switch {
		case len(matches) > 0 && matches[0].Score >= imp.opts.AutoLinkThreshold:
			report.Linked++
		case len(matches) > 0:
			report.Review++
			report.ReviewRows = append(report.ReviewRows, ReviewRow{
				Row:      report.Rows,
				Identity: customerIdentity(candidate),
				MatchID:  matches[0].ID,
				Score:    matches[0].Score,
			})
		default:
			if !imp.opts.DryRun {
				if _, err := imp.store.InsertCustomer(ctx, candidate); err != nil {
					return report, err
				}
			}
			report.Created++
		}
	}

	imp.logReport("Customer import completed", report)
	return report, nil
}

// ImportVehicles reads a vehicle CSV. Each row is deduplicated against
// stored vehicles; new vehicles are attached to an owner when the row
// carries owner fields that match an existing customer decisively.
func (imp *Importer) ImportVehicles(ctx context.Context, r io.Reader) (Report, error) {
	report := Report{BatchID: uuid.NewString()}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return report, errors.NewInvalidInputError("reading CSV header: %v", err)
	}

	cols := GuessColumns(headers, vehicleColumnAliases, imp.opts.MaxHeaderDistance)
	if _, ok := cols["registration"]; !ok {
		return report, errors.NewInvalidInputError("no registration column recognized in header %v", headers)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				report.Rows++
				report.Skipped++
				continue
			}
			return report, errors.Wrap(err, "failed to read CSV row")
		}
		report.Rows++

		candidate := match.Vehicle{
			Registration: field(record, cols, "registration"),
			Make:         field(record, cols, "make"),
			Model:        field(record, cols, "model"),
			Year:         parseYear(field(record, cols, "year")),
			Color:        field(record, cols, "color"),
		}
		if candidate.Registration == "" {
			report.Skipped++
			continue
		}

		matches, err := imp.store.FindVehicleMatches(ctx, candidate)
		if err != nil {
			return report, err
		}

		switch {
		case len(matches) > 0 && matches[0].Score >= imp.opts.AutoLinkThreshold:
			report.Linked++
		case len(matches) > 0:
			report.Review++
			report.ReviewRows = append(report.ReviewRows, ReviewRow{
				Row:      report.Rows,
				Identity: candidate.Registration,
				MatchID:  matches[0].ID,
				Score:    matches[0].Score,
			})
		default:
			ownerID, err := imp.resolveOwner(ctx, record, cols)
			if err != nil {
				return report, err
			}
			candidate.CustomerID = ownerID
			if !imp.opts.DryRun {
				if _, err := imp.store.InsertVehicle(ctx, candidate); err != nil {
					return report, err
				}
			}
			report.Created++
		}
	}

	imp.logReport("Vehicle import completed", report)
	return report, nil
}

// resolveOwner matches the row's owner fields against stored customers.
// Only a decisive match attaches the vehicle; a weak or missing match
// leaves it unowned rather than guessing.
func (imp *Importer) resolveOwner(ctx context.Context, record []string, cols map[string]int) (*int64, error) {
	owner := match.Customer{
		Name:   field(record, cols, "customer_name"),
		Mobile: field(record, cols, "customer_mobile"),
	}
	if owner.Name == "" && owner.Mobile == "" {
		return nil, nil
	}

	matches, err := imp.store.FindCustomerMatches(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 || matches[0].Score < imp.opts.AutoLinkThreshold {
		return nil, nil
	}

	id := matches[0].ID
	return &id, nil
}

func (imp *Importer) logReport(msg string, report Report) {
	if imp.logger == nil {
		return
	}
	imp.logger.Infow(msg,
		"batch_id", report.BatchID,
		"rows", report.Rows,
		"created", report.Created,
		"linked", report.Linked,
		"review", report.Review,
		"skipped", report.Skipped,
	)
}

// field returns the trimmed cell for a guessed column, or "" when the
// column is absent or the row is short.
func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func hasAny(cols map[string]int, names ...string) bool {
	for _, name := range names {
		if _, ok := cols[name]; ok {
			return true
		}
	}
	return false
}

// customerIdentity picks the most recognizable parsed field to label a
// review row with.
func customerIdentity(c match.Customer) string {
	for _, v := range []string{c.Name, c.Mobile, c.Email, c.AccountNumber, c.Phone} {
		if v != "" {
			return v
		}
	}
	return "(blank)"
}

func customerBlank(c match.Customer) bool {
	return c.AccountNumber == "" && c.Name == "" && c.Phone == "" &&
		c.Mobile == "" && c.Email == ""
}

func parseYear(s string) int {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return year
}
