package booking

import (
	"context"
	"time"
)

// Page is an offset/limit window over a listing, already snapped to a
// page boundary by the caller.
type Page struct {
	Offset int
	Limit  int
}

// Repository defines the persistence contract for the booking ledger.
// Listings are ordered by start descending with id descending as the
// tie-break, and every temporal predicate evaluates against the now
// value captured once by the caller.
type Repository interface {
	// Save persists a new booking and assigns its id.
	Save(ctx context.Context, bk *Booking) error

	// FindByID retrieves a booking by id.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// DecideStatus moves a WAITING booking to the target status. The
	// update is conditional on the current status so that concurrent
	// deciders race safely: the loser gets a StatusUpdateError.
	DecideStatus(ctx context.Context, id int64, target Status) (*Booking, error)

	// ListForBooker retrieves the booker's bookings filtered by state.
	ListForBooker(ctx context.Context, bookerID int64, state State, now time.Time, page Page) ([]*Booking, error)

	// ListForOwner retrieves bookings of items owned by the given user,
	// filtered by state.
	ListForOwner(ctx context.Context, ownerID int64, state State, now time.Time, page Page) ([]*Booking, error)

	// LastForItem returns the most recent non-rejected booking of the
	// item that ended before now, or nil if there is none.
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*Booking, error)

	// NextForItem returns the earliest non-rejected booking of the item
	// that starts after now, or nil if there is none.
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*Booking, error)

	// ExistsFinishedFor reports whether a non-rejected booking of the
	// item by the given booker started before the given instant. Gates
	// comment creation.
	ExistsFinishedFor(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error)
}
