package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// ExportArchive persists exported session snapshots as JSONB rows. Archiving
// is write-behind bookkeeping; it never feeds back into session state.
type ExportArchive struct {
	pool *pgxpool.Pool
}

func NewExportArchive(pool *pgxpool.Pool) *ExportArchive {
	return &ExportArchive{pool: pool}
}

// Save inserts one exported snapshot payload for the given session.
func (a *ExportArchive) Save(ctx context.Context, sessionID string, payload []byte) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO quiz_exports (session_id, data) VALUES ($1, $2)`,
		sessionID, payload)
	if err != nil {
		return fmt.Errorf("save export: %w", err)
	}
	return nil
}

// Count returns the number of archived exports for a session.
func (a *ExportArchive) Count(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := a.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM quiz_exports WHERE session_id=$1`,
		sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count exports: %w", err)
	}
	return count, nil
}
