//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"example.com/exercisetracker/internal/domain"
)

func startDatabase(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("tracker"),
		postgrescontainer.WithUsername("tracker"),
		postgrescontainer.WithPassword("tracker"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))
	require.NoError(t, RunMigrations(ctx, connStr))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
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

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed.UTC()
}

func TestUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := startDatabase(t, ctx)
	repo := NewUserRepository(pool)

	user := domain.User{
		ID:        uuid.NewString(),
		Username:  "alice",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Insert(ctx, user))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "alice", stored.Username)

	missing, err := repo.FindByID(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Nil(t, missing)

	garbage, err := repo.FindByID(ctx, "not-a-uuid")
	require.NoError(t, err)
	require.Nil(t, garbage)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestExerciseFilterAndCap(t *testing.T) {
	ctx := context.Background()
	pool := startDatabase(t, ctx)

	users := NewUserRepository(pool)
	exercises := NewExerciseRepository(pool)

	owner := domain.User{ID: uuid.NewString(), Username: "bob", CreatedAt: time.Now().UTC()}
	require.NoError(t, users.Insert(ctx, owner))

	for _, d := range []string{"2024-05-01", "2024-05-02", "2024-05-03", "2024-05-04"} {
		require.NoError(t, exercises.Insert(ctx, domain.Exercise{
			ID:          uuid.NewString(),
			UserID:      owner.ID,
			Description: "walk",
			DurationMin: 10,
			LoggedOn:    day(t, d),
			CreatedAt:   time.Now().UTC(),
		}))
	}

	from := day(t, "2024-05-02")
	to := day(t, "2024-05-03")
	entries, err := exercises.ListByOwner(ctx, owner.ID, domain.DateRange{From: &from, To: &to}, 500)
	require.NoError(t, err)
	require.Len(t, entries, 2, "date bounds are inclusive")

	entries, err = exercises.ListByOwner(ctx, owner.ID, domain.DateRange{}, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	entries, err = exercises.ListByOwner(ctx, owner.ID, domain.DateRange{}, 0)
	require.NoError(t, err)
	require.Empty(t, entries)

	entries, err = exercises.ListByOwner(ctx, uuid.NewString(), domain.DateRange{}, 500)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestInsertsRecordOutboxRows(t *testing.T) {
	ctx := context.Background()
	pool := startDatabase(t, ctx)

	users := NewUserRepository(pool)
	exercises := NewExerciseRepository(pool)

	owner := domain.User{ID: uuid.NewString(), Username: "carol", CreatedAt: time.Now().UTC()}
	require.NoError(t, users.Insert(ctx, owner))
	require.NoError(t, exercises.Insert(ctx, domain.Exercise{
		ID:        uuid.NewString(),
		UserID:    owner.ID,
		LoggedOn:  day(t, "2024-06-01"),
		CreatedAt: time.Now().UTC(),
	}))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE published_at IS NULL`).Scan(&count))
	require.Equal(t, 2, count)
}
