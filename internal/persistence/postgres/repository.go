package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tidefield/wrapped/internal/domain"
	"github.com/tidefield/wrapped/internal/observability"
)

// Repository provides Postgres-backed persistence for computed summaries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const summaryColumns = `summary_id, tenant_id, user_id, kind, year, payload, created_at`

// Create persists the summary record.
func (r *Repository) Create(ctx context.Context, summary domain.Summary) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, "SELECT set_config('app.tenant_id', $1, true)", summary.TenantID); err != nil {
		return err
	}

	const stmt = `INSERT INTO summaries (` + summaryColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err = tx.Exec(ctx, stmt,
		summary.ID,
		summary.TenantID,
		summary.UserID,
		string(summary.Kind),
		summary.Year,
		summary.Payload,
		summary.CreatedAt,
	)
	if err != nil {
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return err
	}
	observability.RecordSummaryPersisted(summary.CreatedAt)
	return nil
}

// Get retrieves a summary by ID, or (nil, nil) when none exists.
func (r *Repository) Get(ctx context.Context, tenantID, summaryID string) (*domain.Summary, error) {
	const query = `SELECT ` + summaryColumns + ` FROM summaries WHERE tenant_id=$1 AND summary_id=$2`

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT set_config('app.tenant_id', $1, true)", tenantID); err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, query, tenantID, summaryID)
	summary, err := scanSummary(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if err := tx.Commit(ctx); err != nil {
				return nil, err
			}
			return nil, nil
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return summary, nil
}

// ListByUser returns summaries for a user, newest first, with cursor
// pagination over (created_at, summary_id).
func (r *Repository) ListByUser(ctx context.Context, tenantID, userID string, cursor *domain.Cursor, limit int) ([]domain.Summary, *domain.Cursor, error) {
	args := []interface{}{tenantID, userID, limit}
	query := `SELECT ` + summaryColumns + ` FROM summaries WHERE tenant_id=$1 AND user_id=$2`

	if cursor != nil {
		query += ` AND (created_at, summary_id) < ($4, $5)`
		args = append(args, cursor.CreatedAt, cursor.ID)
	}
	query += ` ORDER BY created_at DESC, summary_id DESC LIMIT $3`

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT set_config('app.tenant_id', $1, true)", tenantID); err != nil {
		return nil, nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	results := make([]domain.Summary, 0, limit)
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, nil, err
		}
		results = append(results, *summary)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	var nextCursor *domain.Cursor
	if len(results) == limit {
		last := results[len(results)-1]
		nextCursor = &domain.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return results, nextCursor, nil
}

func scanSummary(row pgx.Row) (*domain.Summary, error) {
	var summary domain.Summary
	var kind string
	if err := row.Scan(&summary.ID, &summary.TenantID, &summary.UserID, &kind, &summary.Year, &summary.Payload, &summary.CreatedAt); err != nil {
		return nil, err
	}
	summary.Kind = domain.SummaryKind(kind)
	return &summary, nil
}
