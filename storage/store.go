// Package storage provides the SQLite-backed read and write layer for
// customers, vehicles and jobs, and applies the matching engine to
// bounded working sets loaded per call.
//
// Each search or linkage call performs one bounded read into memory,
// scores in a pure loop, and returns a list. There is no shared mutable
// state across calls and no caching: every invocation is independent and
// idempotent given the same storage snapshot.
package storage

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/garagehq/gms/db"
	"github.com/garagehq/gms/errors"
	"github.com/garagehq/gms/match"
)

// Options bound the working set and carry the scoring thresholds.
type Options struct {
	// Limit is the default max results for search calls (callers can pass
	// their own per-call limit).
	Limit int

	// MinScore is the search relevance floor; results at or below it are
	// dropped.
	MinScore float64

	// WorkingSet is the number of most-recent rows loaded per call.
	WorkingSet int

	// MinQueryLen guards short queries: anything shorter after trimming
	// returns empty results, not an error.
	MinQueryLen int

	// CustomerLinkThreshold and VehicleLinkThreshold are the minimum
	// linkage scores for deduplication matches.
	CustomerLinkThreshold float64
	VehicleLinkThreshold  float64
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		Limit:                 50,
		MinScore:              match.MinScore,
		WorkingSet:            1000,
		MinQueryLen:           2,
		CustomerLinkThreshold: match.DefaultCustomerLinkThreshold,
		VehicleLinkThreshold:  match.DefaultVehicleLinkThreshold,
	}
}

// Store wraps the database handle with the matcher and scoring options.
type Store struct {
	db      *sql.DB
	logger  *zap.SugaredLogger
	matcher *match.Matcher
	opts    Options
}

// NewStore creates a store with production defaults.
func NewStore(db *sql.DB, logger *zap.SugaredLogger) *Store {
	return NewStoreWithOptions(db, logger, DefaultOptions())
}

// NewStoreWithOptions creates a store with explicit options. Zero or
// negative option values fall back to the defaults.
func NewStoreWithOptions(db *sql.DB, logger *zap.SugaredLogger, opts Options) *Store {
	defaults := DefaultOptions()
	if opts.Limit <= 0 {
		opts.Limit = defaults.Limit
	}
	if opts.MinScore <= 0 {
		opts.MinScore = defaults.MinScore
	}
	if opts.WorkingSet <= 0 {
		opts.WorkingSet = defaults.WorkingSet
	}
	if opts.MinQueryLen <= 0 {
		opts.MinQueryLen = defaults.MinQueryLen
	}
	if opts.CustomerLinkThreshold <= 0 {
		opts.CustomerLinkThreshold = defaults.CustomerLinkThreshold
	}
	if opts.VehicleLinkThreshold <= 0 {
		opts.VehicleLinkThreshold = defaults.VehicleLinkThreshold
	}

	return &Store{
		db:      db,
		logger:  logger,
		matcher: match.NewMatcher(),
		opts:    opts,
	}
}

// queryTooShort reports whether a trimmed query falls under the minimum
// length guard.
func (s *Store) queryTooShort(trimmed string) bool {
	return len([]rune(trimmed)) < s.opts.MinQueryLen
}

// wrapReadError wraps a working-set read failure, mapping closed-handle
// driver errors onto db.ErrDatabaseClosed so callers can tell a shutdown
// race from a real query failure.
func wrapReadError(err error, msg string) error {
	if db.IsDatabaseClosed(err) {
		err = db.ErrDatabaseClosed
	}
	return errors.Wrap(err, msg)
}
