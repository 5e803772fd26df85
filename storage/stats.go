package storage

import (
	"context"
)

// Stats holds table row counts for `gms db stats`.
type Stats struct {
	Customers int64
	Vehicles  int64
	Jobs      int64
}

// Counts returns the row count of each core table.
func (s *Store) Counts(ctx context.Context) (Stats, error) {
	var stats Stats

	counts := []struct {
		query string
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM customers", &stats.Customers},
		{"SELECT COUNT(*) FROM vehicles", &stats.Vehicles},
		{"SELECT COUNT(*) FROM jobs", &stats.Jobs},
	}

	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return Stats{}, wrapReadError(err, "failed to count rows")
		}
	}

	return stats, nil
}
