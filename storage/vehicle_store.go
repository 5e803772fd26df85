package storage

import (
	"context"
	"database/sql"
	"strings"

	"github.com/garagehq/gms/errors"
	"github.com/garagehq/gms/match"
)

// Customer fields are denormalized into the vehicle working set at query
// time so the matcher can score a vehicle by its owner's name, mobile or
// account without a second read.
const (
	vehicleWorkingSetQuery = `
		SELECT v.id, v.registration, v.make, v.model, COALESCE(v.year, 0), v.color,
		       v.customer_id,
		       COALESCE(c.name, ''), COALESCE(c.mobile, ''), COALESCE(c.account_number, '')
		FROM vehicles v
		LEFT JOIN customers c ON c.id = v.customer_id
		ORDER BY v.created_at DESC, v.id DESC
		LIMIT ?`

	vehicleInsertQuery = `
		INSERT INTO vehicles (registration, make, model, year, color, customer_id)
		VALUES (?, ?, ?, ?, ?, ?)`

	vehicleLinkCustomerQuery = `
		UPDATE vehicles SET customer_id = ? WHERE id = ?`
)

// SearchVehicles scores the most recent vehicles against a free-text
// query. Same guard, floor and ordering contract as SearchCustomers.
func (s *Store) SearchVehicles(ctx context.Context, query string, limit int) ([]match.VehicleResult, error) {
	trimmed := strings.TrimSpace(query)
	if s.queryTooShort(trimmed) {
		return []match.VehicleResult{}, nil
	}
	if limit <= 0 {
		limit = s.opts.Limit
	}

	candidates, err := s.loadVehicles(ctx)
	if err != nil {
		return nil, err
	}

	results := s.matcher.RankVehicles(candidates, match.NewQuery(trimmed), s.opts.MinScore, limit)

	if s.logger != nil {
		s.logger.Debugw("Vehicle search completed",
			"query", trimmed,
			"candidates", len(candidates),
			"matches", len(results),
		)
	}

	return results, nil
}

// FindVehicleMatches scores a candidate vehicle against the most recent
// stored vehicles for deduplication. The vehicle threshold is strict:
// registrations must be near-exact before a pair is even considered.
func (s *Store) FindVehicleMatches(ctx context.Context, candidate match.Vehicle) ([]match.LinkMatch, error) {
	existing, err := s.loadVehicles(ctx)
	if err != nil {
		return nil, err
	}

	return s.matcher.RankVehicleLinks(candidate, existing, s.opts.VehicleLinkThreshold), nil
}

// InsertVehicle stores a new vehicle and returns its id. A nil
// CustomerID stores NULL.
func (s *Store) InsertVehicle(ctx context.Context, v match.Vehicle) (int64, error) {
	var year interface{}
	if v.Year != 0 {
		year = v.Year
	}
	var customerID interface{}
	if v.CustomerID != nil {
		customerID = *v.CustomerID
	}

	res, err := s.db.ExecContext(ctx, vehicleInsertQuery,
		v.Registration, v.Make, v.Model, year, v.Color, customerID,
	)
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert vehicle")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read vehicle insert id")
	}
	return id, nil
}

// LinkVehicleToCustomer attaches an existing vehicle to a customer.
func (s *Store) LinkVehicleToCustomer(ctx context.Context, vehicleID, customerID int64) error {
	res, err := s.db.ExecContext(ctx, vehicleLinkCustomerQuery, customerID, vehicleID)
	if err != nil {
		return errors.Wrap(err, "failed to link vehicle to customer")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read link result")
	}
	if affected == 0 {
		return errors.NewNotFoundError("vehicle %d", vehicleID)
	}
	return nil
}

// loadVehicles reads the bounded working set of most recent vehicles
// with denormalized customer fields.
func (s *Store) loadVehicles(ctx context.Context) ([]match.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx, vehicleWorkingSetQuery, s.opts.WorkingSet)
	if err != nil {
		return nil, wrapReadError(err, "failed to query vehicles")
	}
	defer rows.Close()

	var vehicles []match.Vehicle
	for rows.Next() {
		var v match.Vehicle
		var customerID sql.NullInt64
		if err := rows.Scan(
			&v.ID, &v.Registration, &v.Make, &v.Model, &v.Year, &v.Color,
			&customerID,
			&v.CustomerName, &v.CustomerMobile, &v.CustomerAccount,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan vehicle row")
		}
		if customerID.Valid {
			id := customerID.Int64
			v.CustomerID = &id
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating over vehicles")
	}

	return vehicles, nil
}
