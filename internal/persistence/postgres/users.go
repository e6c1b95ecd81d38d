// Package postgres provides pgx-backed persistence for users, exercises, and
// the event outbox.
package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/exercisetracker/internal/domain"
	"example.com/exercisetracker/internal/events"
	"example.com/exercisetracker/internal/observability"
)

// UserRepository persists user records.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Insert persists the user and records a user.registered outbox event inside
// a single transaction.
func (r *UserRepository) Insert(ctx context.Context, user domain.User) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const stmt = `INSERT INTO users (user_id, username, created_at) VALUES ($1,$2,$3)`
	if _, err = tx.Exec(ctx, stmt, user.ID, user.Username, user.CreatedAt); err != nil {
		return err
	}

	if err = insertOutbox(ctx, tx, "user", user.ID, events.TypeUserRegistered, user.ID, events.UserRegistered{
		UserID:     user.ID,
		Username:   user.Username,
		OccurredAt: user.CreatedAt,
	}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	observability.RecordUserPersisted(user.CreatedAt)
	return nil
}

// FindByID retrieves a user by id. A miss returns (nil, nil); ids that are
// not valid uuids are treated as misses rather than surfaced as store errors.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if uuid.Validate(id) != nil {
		return nil, nil
	}

	const query = `SELECT user_id, username, created_at FROM users WHERE user_id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	var user domain.User
	if err := row.Scan(&user.ID, &user.Username, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// List returns every user in store order.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT user_id, username, created_at FROM users`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
