// Package request holds the item-request entity: an open call for an
// item that is not listed yet. Independent of booking state.
package request

import (
	"context"
	"time"
)

// ItemRequest is a user's description of an item they are looking for.
type ItemRequest struct {
	ID          int64
	Description string
	RequestorID int64
	Created     time.Time
}

// Page is an offset/limit window over a listing.
type Page struct {
	Offset int
	Limit  int
}

// Repository defines the persistence contract for item requests.
type Repository interface {
	// Save persists a new request and assigns its id.
	Save(ctx context.Context, r *ItemRequest) error

	// FindByID retrieves a request by id.
	FindByID(ctx context.Context, id int64) (*ItemRequest, error)

	// ListByRequestor retrieves the user's own requests, newest first.
	ListByRequestor(ctx context.Context, requestorID int64) ([]*ItemRequest, error)

	// ListOthers retrieves other users' requests, newest first.
	ListOthers(ctx context.Context, requestorID int64, page Page) ([]*ItemRequest, error)
}
