package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/exercisetracker/internal/domain"
	"example.com/exercisetracker/internal/events"
	"example.com/exercisetracker/internal/observability"
)

// ExerciseRepository persists exercise entries.
type ExerciseRepository struct {
	pool *pgxpool.Pool
}

// NewExerciseRepository constructs an ExerciseRepository.
func NewExerciseRepository(pool *pgxpool.Pool) *ExerciseRepository {
	return &ExerciseRepository{pool: pool}
}

// Insert persists the entry and records an exercise.logged outbox event
// inside a single transaction.
func (r *ExerciseRepository) Insert(ctx context.Context, exercise domain.Exercise) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const stmt = `INSERT INTO exercises (exercise_id, user_id, description, duration_min, logged_on, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)`

	_, err = tx.Exec(ctx, stmt,
		exercise.ID,
		exercise.UserID,
		exercise.Description,
		exercise.DurationMin,
		exercise.LoggedOn,
		exercise.CreatedAt,
	)
	if err != nil {
		return err
	}

	if err = insertOutbox(ctx, tx, "exercise", exercise.ID, events.TypeExerciseLogged, exercise.UserID, events.ExerciseLogged{
		ExerciseID:  exercise.ID,
		UserID:      exercise.UserID,
		Description: exercise.Description,
		DurationMin: exercise.DurationMin,
		LoggedOn:    exercise.LoggedOn.Format("2006-01-02"),
		OccurredAt:  exercise.CreatedAt,
	}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}
	observability.RecordExercisePersisted(exercise.CreatedAt)
	return nil
}

// ListByOwner returns entries for one user, date-filtered and capped. Bounds
// are inclusive; an open range adds no date predicate at all.
func (r *ExerciseRepository) ListByOwner(ctx context.Context, userID string, rng domain.DateRange, limit int) ([]domain.Exercise, error) {
	query := `SELECT exercise_id, user_id, description, duration_min, logged_on, created_at
        FROM exercises WHERE user_id=$1`
	args := []interface{}{userID}

	if rng.From != nil {
		args = append(args, *rng.From)
		query += fmt.Sprintf(` AND logged_on >= $%d`, len(args))
	}
	if rng.To != nil {
		args = append(args, *rng.To)
		query += fmt.Sprintf(` AND logged_on <= $%d`, len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY logged_on, exercise_id LIMIT $%d`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.Exercise, 0, limit)
	for rows.Next() {
		var exercise domain.Exercise
		if err := rows.Scan(&exercise.ID, &exercise.UserID, &exercise.Description, &exercise.DurationMin, &exercise.LoggedOn, &exercise.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
