package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/vibes/internal/shared"
)

// SeedVersionRepository records which fixture versions have been applied.
type SeedVersionRepository struct {
	base
}

// NewSeedVersionRepository creates a new SeedVersionRepository with the given connection and dialect
func NewSeedVersionRepository(q Querier, dialect shared.Dialect) *SeedVersionRepository {
	return &SeedVersionRepository{base{q: q, dialect: dialect}}
}

// Get returns the applied version of the named fixture and whether one has been recorded.
func (r *SeedVersionRepository) Get(ctx context.Context, name string) (int, bool, error) {
	var version int
	err := r.q.QueryRowContext(ctx, r.rebind(`SELECT version FROM seed_versions WHERE name = ?`), name).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read seed version: %w", err)
	}
	return version, true, nil
}

// Set records version as applied for the named fixture.
func (r *SeedVersionRepository) Set(ctx context.Context, name string, version int) error {
	query := r.rebind(`
		INSERT INTO seed_versions (name, version) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET version = excluded.version, applied_at = CURRENT_TIMESTAMP
	`)
	if _, err := r.q.ExecContext(ctx, query, name, version); err != nil {
		return fmt.Errorf("failed to record seed version: %w", err)
	}
	return nil
}
