// Package item holds the item catalog and comment entities with their
// persistence contracts.
package item

import (
	"context"
	"time"
)

// Item is a shareable thing listed by its owner. Available is a
// manually-maintained flag: owners control it independently of
// reservations, and approving a booking never flips it.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

// Comment is feedback left on an item by a user who has booked it.
type Comment struct {
	ID       int64
	Text     string
	ItemID   int64
	AuthorID int64
	Created  time.Time
}

// Page is an offset/limit window over a listing.
type Page struct {
	Offset int
	Limit  int
}

// Repository defines the persistence contract for items.
type Repository interface {
	// Save persists a new item and assigns its id.
	Save(ctx context.Context, it *Item) error

	// FindByID retrieves an item by id.
	FindByID(ctx context.Context, id int64) (*Item, error)

	// ListByIDs retrieves the items with the given ids.
	ListByIDs(ctx context.Context, ids []int64) ([]*Item, error)

	// Update persists changes to an existing item.
	Update(ctx context.Context, it *Item) error

	// ListByOwner retrieves the owner's items ordered by id.
	ListByOwner(ctx context.Context, ownerID int64, page Page) ([]*Item, error)

	// CountByOwner reports how many items the user owns. Gates the
	// owner-side booking listing.
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)

	// Search retrieves available items whose name or description
	// contains the text, case-insensitively.
	Search(ctx context.Context, text string, page Page) ([]*Item, error)

	// ListByRequestIDs retrieves items answering the given requests.
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error)
}

// CommentRepository defines the persistence contract for comments.
type CommentRepository interface {
	// Save persists a new comment and assigns its id.
	Save(ctx context.Context, c *Comment) error

	// ListByItem retrieves an item's comments, oldest first.
	ListByItem(ctx context.Context, itemID int64) ([]*Comment, error)

	// ListByItemIDs retrieves comments for all given items, oldest first.
	ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*Comment, error)
}
