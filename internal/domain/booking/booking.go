package booking

import (
	"time"
)

// Booking is the aggregate root of the reservation ledger: a time-bounded
// request by one user (the booker) against another user's item. Records
// are append-only; only the status ever changes after creation.
type Booking struct {
	id       int64
	itemID   int64
	bookerID int64
	start    time.Time
	end      time.Time
	status   Status
}

// New creates a booking in the WAITING status. Precondition checks
// against the item and requester live in the application service, which
// owns their ordering.
func New(itemID, bookerID int64, start, end time.Time) *Booking {
	return &Booking{
		itemID:   itemID,
		bookerID: bookerID,
		start:    start,
		end:      end,
		status:   StatusWaiting,
	}
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(id, itemID, bookerID int64, start, end time.Time, status Status) *Booking {
	return &Booking{
		id:       id,
		itemID:   itemID,
		bookerID: bookerID,
		start:    start,
		end:      end,
		status:   status,
	}
}

// ID returns the booking's identity, assigned by the ledger on creation.
func (b *Booking) ID() int64 { return b.id }

// ItemID returns the booked item's id.
func (b *Booking) ItemID() int64 { return b.itemID }

// BookerID returns the requesting user's id.
func (b *Booking) BookerID() int64 { return b.bookerID }

// Start returns the reservation window start.
func (b *Booking) Start() time.Time { return b.start }

// End returns the reservation window end.
func (b *Booking) End() time.Time { return b.end }

// Status returns the current booking status.
func (b *Booking) Status() Status { return b.status }

// SetID records the identity assigned by the ledger on first save.
func (b *Booking) SetID(id int64) { b.id = id }
