// Package domain defines the business logic for the exercise tracker.
package domain

import "time"

// User is an identity record. Usernames are not unique; the id is the only key.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}
