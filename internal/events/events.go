// Package events defines the payloads published through the outbox.
package events

import "time"

// Topic names for the two record streams.
const (
	TopicUserEvents     = "user_events"
	TopicExerciseEvents = "exercise_events"
)

// Event type discriminators carried in the outbox rows and message headers.
const (
	TypeUserRegistered = "user.registered"
	TypeExerciseLogged = "exercise.logged"
)

// UserRegistered is emitted when a new user record is persisted.
type UserRegistered struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ExerciseLogged is emitted when a new exercise entry is persisted.
type ExerciseLogged struct {
	ExerciseID  string    `json:"exercise_id"`
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	DurationMin int       `json:"duration_min"`
	LoggedOn    string    `json:"logged_on"`
	OccurredAt  time.Time `json:"occurred_at"`
}
