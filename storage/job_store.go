package storage

import (
	"context"
	"database/sql"
	"strings"

	"github.com/garagehq/gms/errors"
	"github.com/garagehq/gms/match"
)

const (
	jobWorkingSetQuery = `
		SELECT j.id, j.job_number, j.description, j.status,
		       j.customer_id, j.vehicle_id, j.created_date, j.assigned_technician,
		       COALESCE(c.name, ''), COALESCE(c.mobile, ''), COALESCE(v.registration, '')
		FROM jobs j
		LEFT JOIN customers c ON c.id = j.customer_id
		LEFT JOIN vehicles v ON v.id = j.vehicle_id
		ORDER BY j.created_date DESC, j.id DESC
		LIMIT ?`

	jobInsertQuery = `
		INSERT INTO jobs (job_number, description, status, customer_id, vehicle_id, assigned_technician)
		VALUES (?, ?, ?, ?, ?, ?)`
)

// SearchJobs scores the most recent jobs against a free-text query.
// Same guard, floor and ordering contract as SearchCustomers.
func (s *Store) SearchJobs(ctx context.Context, query string, limit int) ([]match.JobResult, error) {
	trimmed := strings.TrimSpace(query)
	if s.queryTooShort(trimmed) {
		return []match.JobResult{}, nil
	}
	if limit <= 0 {
		limit = s.opts.Limit
	}

	candidates, err := s.loadJobs(ctx)
	if err != nil {
		return nil, err
	}

	results := s.matcher.RankJobs(candidates, match.NewQuery(trimmed), s.opts.MinScore, limit)

	if s.logger != nil {
		s.logger.Debugw("Job search completed",
			"query", trimmed,
			"candidates", len(candidates),
			"matches", len(results),
		)
	}

	return results, nil
}

// InsertJob stores a new job and returns its id.
func (s *Store) InsertJob(ctx context.Context, j match.Job) (int64, error) {
	var customerID, vehicleID interface{}
	if j.CustomerID != nil {
		customerID = *j.CustomerID
	}
	if j.VehicleID != nil {
		vehicleID = *j.VehicleID
	}

	res, err := s.db.ExecContext(ctx, jobInsertQuery,
		j.JobNumber, j.Description, j.Status, customerID, vehicleID, j.AssignedTechnician,
	)
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert job")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read job insert id")
	}
	return id, nil
}

// loadJobs reads the bounded working set of most recent jobs with
// denormalized customer and vehicle fields.
func (s *Store) loadJobs(ctx context.Context) ([]match.Job, error) {
	rows, err := s.db.QueryContext(ctx, jobWorkingSetQuery, s.opts.WorkingSet)
	if err != nil {
		return nil, wrapReadError(err, "failed to query jobs")
	}
	defer rows.Close()

	var jobs []match.Job
	for rows.Next() {
		var j match.Job
		var customerID, vehicleID sql.NullInt64
		if err := rows.Scan(
			&j.ID, &j.JobNumber, &j.Description, &j.Status,
			&customerID, &vehicleID, &j.CreatedDate, &j.AssignedTechnician,
			&j.CustomerName, &j.CustomerMobile, &j.VehicleRegistration,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan job row")
		}
		if customerID.Valid {
			id := customerID.Int64
			j.CustomerID = &id
		}
		if vehicleID.Valid {
			id := vehicleID.Int64
			j.VehicleID = &id
		}
		jobs = append(jobs, j)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating over jobs")
	}

	return jobs, nil
}
