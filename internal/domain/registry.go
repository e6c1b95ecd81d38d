package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRepository captures persistence operations for user records.
type UserRepository interface {
	Insert(ctx context.Context, user User) error
	FindByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
}

// Registry manages user identity records.
type Registry struct {
	repo UserRepository
}

// NewRegistry constructs a Registry.
func NewRegistry(repo UserRepository) *Registry {
	return &Registry{repo: repo}
}

// Register persists a new user with a freshly assigned id. An empty username
// is rejected before anything touches the store.
func (r *Registry) Register(ctx context.Context, username string) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, &ValidationError{Msg: "username is required"}
	}

	user := User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.repo.Insert(ctx, user); err != nil {
		return nil, storageErr("insert user", err)
	}
	return &user, nil
}

// List returns every registered user in store order. An empty store yields an
// empty slice, not an error.
func (r *Registry) List(ctx context.Context) ([]User, error) {
	users, err := r.repo.List(ctx)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// Resolve looks up a user by id, mapping a miss to ErrUserNotFound.
func (r *Registry) Resolve(ctx context.Context, id string) (*User, error) {
	user, err := r.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("find user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
