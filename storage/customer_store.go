package storage

import (
	"context"
	"strings"

	"github.com/garagehq/gms/errors"
	"github.com/garagehq/gms/match"
)

// Query constants
const (
	customerWorkingSetQuery = `
		SELECT id, account_number, name, phone, mobile, email, postcode, address, created_at
		FROM customers
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	customerInsertQuery = `
		INSERT INTO customers (account_number, name, phone, mobile, email, postcode, address)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
)

// SearchCustomers scores the most recent customers against a free-text
// query and returns survivors above the relevance floor, best first.
// Queries shorter than the minimum length return an empty list, not an
// error.
func (s *Store) SearchCustomers(ctx context.Context, query string, limit int) ([]match.CustomerResult, error) {
	trimmed := strings.TrimSpace(query)
	if s.queryTooShort(trimmed) {
		return []match.CustomerResult{}, nil
	}
	if limit <= 0 {
		limit = s.opts.Limit
	}

	candidates, err := s.loadCustomers(ctx)
	if err != nil {
		return nil, err
	}

	results := s.matcher.RankCustomers(candidates, match.NewQuery(trimmed), s.opts.MinScore, limit)

	if s.logger != nil {
		s.logger.Debugw("Customer search completed",
			"query", trimmed,
			"candidates", len(candidates),
			"matches", len(results),
		)
	}

	return results, nil
}

// FindCustomerMatches scores a candidate record against the most recent
// stored customers for deduplication. Returns every match at or above
// the customer linkage threshold, best first. The caller decides whether
// the top match is authoritative or needs manual review.
func (s *Store) FindCustomerMatches(ctx context.Context, candidate match.Customer) ([]match.LinkMatch, error) {
	existing, err := s.loadCustomers(ctx)
	if err != nil {
		return nil, err
	}

	return s.matcher.RankCustomerLinks(candidate, existing, s.opts.CustomerLinkThreshold), nil
}

// InsertCustomer stores a new customer and returns its id.
func (s *Store) InsertCustomer(ctx context.Context, c match.Customer) (int64, error) {
	res, err := s.db.ExecContext(ctx, customerInsertQuery,
		c.AccountNumber, c.Name, c.Phone, c.Mobile, c.Email, c.Postcode, c.Address,
	)
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert customer")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read customer insert id")
	}
	return id, nil
}

// loadCustomers reads the bounded working set of most recent customers.
func (s *Store) loadCustomers(ctx context.Context) ([]match.Customer, error) {
	rows, err := s.db.QueryContext(ctx, customerWorkingSetQuery, s.opts.WorkingSet)
	if err != nil {
		return nil, wrapReadError(err, "failed to query customers")
	}
	defer rows.Close()

	var customers []match.Customer
	for rows.Next() {
		var c match.Customer
		if err := rows.Scan(
			&c.ID, &c.AccountNumber, &c.Name, &c.Phone, &c.Mobile,
			&c.Email, &c.Postcode, &c.Address, &c.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan customer row")
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating over customers")
	}

	return customers, nil
}
