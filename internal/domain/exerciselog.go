package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultLogLimit caps log queries when the caller does not supply a limit.
const DefaultLogLimit = 500

// ExerciseRepository captures persistence operations for exercise entries.
type ExerciseRepository interface {
	Insert(ctx context.Context, exercise Exercise) error
	ListByOwner(ctx context.Context, userID string, rng DateRange, limit int) ([]Exercise, error)
}

// ExerciseLog manages exercise entries scoped to a user and answers filtered
// log queries.
type ExerciseLog struct {
	registry *Registry
	repo     ExerciseRepository
}

// NewExerciseLog constructs an ExerciseLog.
func NewExerciseLog(registry *Registry, repo ExerciseRepository) *ExerciseLog {
	return &ExerciseLog{registry: registry, repo: repo}
}

// CreateExerciseInput captures the payload for logging a new entry. Date is
// the raw caller-supplied string; empty means "today".
type CreateExerciseInput struct {
	UserID      string
	Description string
	DurationMin int
	Date        string
}

// Create logs an exercise entry against an existing user and returns the
// composite user/entry view. The owning user must exist; the entry's date
// defaults to the current date when none is supplied.
func (l *ExerciseLog) Create(ctx context.Context, input CreateExerciseInput) (*LoggedExercise, error) {
	user, err := l.registry.Resolve(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	loggedOn := time.Now().UTC()
	if input.Date != "" {
		parsed, err := ParseDate(input.Date)
		if err != nil {
			return nil, &ValidationError{Msg: "invalid date"}
		}
		loggedOn = parsed
	}
	loggedOn = loggedOn.Truncate(24 * time.Hour)

	exercise := Exercise{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Description: input.Description,
		DurationMin: input.DurationMin,
		LoggedOn:    loggedOn,
		CreatedAt:   time.Now().UTC(),
	}

	if err := l.repo.Insert(ctx, exercise); err != nil {
		return nil, storageErr("insert exercise", err)
	}

	return &LoggedExercise{
		UserID:      user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		DurationMin: exercise.DurationMin,
		LoggedOn:    exercise.LoggedOn,
	}, nil
}

// QueryInput captures a log query. From/To are raw date strings, empty when
// absent. Limit is nil when the caller supplied none.
type QueryInput struct {
	UserID string
	From   string
	To     string
	Limit  *int
}

// QueryLog resolves the user and returns their entries, date-filtered and
// capped. Bounds are inclusive; when neither is supplied no date predicate is
// applied at all. An absent limit falls back to DefaultLogLimit; a supplied
// limit is passed through as given, so zero yields zero entries.
func (l *ExerciseLog) QueryLog(ctx context.Context, input QueryInput) (*LogPage, error) {
	user, err := l.registry.Resolve(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	var rng DateRange
	if input.From != "" {
		from, err := ParseDate(input.From)
		if err != nil {
			return nil, &ValidationError{Msg: "invalid from date"}
		}
		rng.From = &from
	}
	if input.To != "" {
		to, err := ParseDate(input.To)
		if err != nil {
			return nil, &ValidationError{Msg: "invalid to date"}
		}
		rng.To = &to
	}

	limit := DefaultLogLimit
	if input.Limit != nil {
		if *input.Limit < 0 {
			return nil, &ValidationError{Msg: "invalid limit"}
		}
		limit = *input.Limit
	}

	entries, err := l.repo.ListByOwner(ctx, user.ID, rng, limit)
	if err != nil {
		return nil, storageErr("list exercises", err)
	}
	if entries == nil {
		entries = []Exercise{}
	}

	return &LogPage{
		UserID:   user.ID,
		Username: user.Username,
		Entries:  entries,
	}, nil
}

// dateLayouts are the accepted inputs for entry dates and range bounds.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses a caller-supplied calendar date.
func ParseDate(value string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// CalendarString renders a date the way clients expect it: weekday, month,
// day, year, no time of day.
func CalendarString(t time.Time) string {
	return t.Format("Mon Jan 02 2006")
}
