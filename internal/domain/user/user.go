// Package user holds the user directory entity and its persistence
// contract. The booking core only reads from it.
package user

import "context"

// User is a registered member of the sharing service.
type User struct {
	ID    int64
	Name  string
	Email string
}

// Repository defines the persistence contract for users.
type Repository interface {
	// Save persists a new user and assigns its id. A duplicate email
	// yields an EmailExistsError.
	Save(ctx context.Context, u *User) error

	// FindByID retrieves a user by id.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindAll retrieves every user.
	FindAll(ctx context.Context) ([]*User, error)

	// ListByIDs retrieves the users with the given ids.
	ListByIDs(ctx context.Context, ids []int64) ([]*User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) error

	// Delete removes a user by id.
	Delete(ctx context.Context, id int64) error
}
