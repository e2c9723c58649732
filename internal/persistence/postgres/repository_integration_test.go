//go:build integration

package postgres

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/tidefield/wrapped/internal/domain"
)

func TestRepositoryRespectsTenantIsolation(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("wrapped"),
		postgrescontainer.WithUsername("platform"),
		postgrescontainer.WithPassword("platform"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))

	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	repo := NewRepository(pool)

	summary := domain.Summary{
		ID:        uuid.NewString(),
		TenantID:  uuid.NewString(),
		UserID:    uuid.NewString(),
		Kind:      domain.SummaryKindActivities,
		Year:      2025,
		Payload:   json.RawMessage(`{"year":2025,"total_distance_km":42.5}`),
		CreatedAt: time.Now().UTC(),
	}

	require.NoError(t, repo.Create(ctx, summary))

	stored, err := repo.Get(ctx, summary.TenantID, summary.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, summary.ID, stored.ID)
	require.Equal(t, domain.SummaryKindActivities, stored.Kind)

	otherTenant := uuid.NewString()
	storedOther, err := repo.Get(ctx, otherTenant, summary.ID)
	require.NoError(t, err)
	require.Nil(t, storedOther, "tenant isolation should prevent cross-tenant access")
}

func TestRepositoryListPagination(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("wrapped"),
		postgrescontainer.WithUsername("platform"),
		postgrescontainer.WithPassword("platform"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))

	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	repo := NewRepository(pool)

	tenantID := uuid.NewString()
	userID := uuid.NewString()
	base := time.Now().UTC().Truncate(time.Millisecond)

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		summary := domain.Summary{
			ID:        uuid.NewString(),
			TenantID:  tenantID,
			UserID:    userID,
			Kind:      domain.SummaryKindSteps,
			Year:      2025,
			Payload:   json.RawMessage(`{}`),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, summary))
		ids = append(ids, summary.ID)
	}

	first, cursor, err := repo.ListByUser(ctx, tenantID, userID, nil, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.Equal(t, ids[2], first[0].ID)
	require.Equal(t, ids[1], first[1].ID)
	require.NotNil(t, cursor)

	second, next, err := repo.ListByUser(ctx, tenantID, userID, cursor, 2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Equal(t, ids[0], second[0].ID)
	require.Nil(t, next)
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	files := []string{
		"../../../db/postgres/migrations/0001_init.up.sql",
	}

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	for _, rel := range files {
		path := resolvePath(t, rel)
		contents, readErr := os.ReadFile(path)
		require.NoError(t, readErr)

		_, execErr := pool.Exec(ctx, string(contents))
		require.NoError(t, execErr)
	}
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
