package domain

import "time"

// Exercise is a single logged activity entry owned by a user. Entries are
// immutable once persisted and are never deleted.
type Exercise struct {
	ID          string
	UserID      string
	Description string
	DurationMin int
	LoggedOn    time.Time
	CreatedAt   time.Time
}

// LoggedExercise is the composite view returned after logging an entry: the
// owning user's identity joined with the entry fields.
type LoggedExercise struct {
	UserID      string
	Username    string
	Description string
	DurationMin int
	LoggedOn    time.Time
}

// LogPage bundles the result of a log query for one user.
type LogPage struct {
	UserID   string
	Username string
	Entries  []Exercise
}

// DateRange is an inclusive calendar-date filter. A nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}
