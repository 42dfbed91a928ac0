package application

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/shareloop/service-sharing/internal/domain"
	"github.com/shareloop/service-sharing/internal/domain/booking"
	"github.com/shareloop/service-sharing/internal/domain/item"
	"github.com/shareloop/service-sharing/internal/domain/user"
	"github.com/shareloop/service-sharing/internal/events"
	"github.com/shareloop/service-sharing/internal/localtime"
)

// BookingCreateRequest holds the data needed to create a booking.
type BookingCreateRequest struct {
	ItemID int64                    `json:"itemId" binding:"required"`
	Start  *localtime.LocalDateTime `json:"start"`
	End    *localtime.LocalDateTime `json:"end"`
}

// BookingService enforces the booking lifecycle: creation invariants,
// status transitions, authorization checks and the temporal
// classification of bookings against a now captured once per call.
type BookingService struct {
	bookings  booking.Repository
	users     user.Repository
	items     item.Repository
	publisher events.Publisher
	logger    *zap.Logger
	clock     func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings booking.Repository,
	users user.Repository,
	items item.Repository,
	publisher events.Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		users:     users,
		items:     items,
		publisher: publisher,
		logger:    logger,
		clock:     time.Now,
	}
}

// Create validates and persists a new booking in the WAITING status.
// Checks run in a fixed order; the first failing check wins.
func (s *BookingService) Create(ctx context.Context, bookerID int64, req BookingCreateRequest) (*BookingDTO, error) {
	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if req.Start == nil || req.End == nil {
		return nil, domain.NewValidationError("booking period is required")
	}
	if it.OwnerID == bookerID {
		return nil, domain.NewOwnershipError("user owns the requested item")
	}
	start, end := req.Start.Time, req.End.Time
	if !it.Available || !start.Before(end) {
		return nil, domain.NewValidationError("item is unavailable or the booking period is invalid")
	}

	bk := booking.New(it.ID, bookerID, start, end)
	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewBookingEvent(events.BookingCreated, bk.ID(), it.ID, bookerID, it.OwnerID, string(bk.Status())))

	result := toBookingDTO(bk, it, booker)
	return &result, nil
}

// ChangeStatus lets the item owner approve or reject a WAITING booking.
// A decided booking never changes status again.
func (s *BookingService) ChangeStatus(ctx context.Context, bookingID, requesterID int64, approve bool) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if it.OwnerID != requesterID {
		return nil, domain.NewOwnershipError("user does not own the booked item")
	}
	if bk.Status().IsTerminal() {
		return nil, domain.NewStatusUpdateError("booking is already decided")
	}

	target := booking.StatusRejected
	eventType := events.BookingRejected
	if approve {
		target = booking.StatusApproved
		eventType = events.BookingApproved
	}

	updated, err := s.bookings.DecideStatus(ctx, bookingID, target)
	if err != nil {
		return nil, err
	}
	booker, err := s.users.FindByID(ctx, updated.BookerID())
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewBookingEvent(eventType, updated.ID(), it.ID, updated.BookerID(), it.OwnerID, string(updated.Status())))

	result := toBookingDTO(updated, it, booker)
	return &result, nil
}

// Get retrieves one booking for its booker or the item owner. Anyone
// else gets a not-found, so unrelated parties cannot probe existence.
func (s *BookingService) Get(ctx context.Context, bookingID, requesterID int64) (*BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if requesterID != bk.BookerID() && requesterID != it.OwnerID {
		return nil, domain.NewNotFoundError("Booking", strconv.FormatInt(bookingID, 10))
	}
	booker, err := s.users.FindByID(ctx, bk.BookerID())
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk, it, booker)
	return &result, nil
}

// ListForBooker retrieves the requester's own bookings filtered by the
// state token.
func (s *BookingService) ListForBooker(ctx context.Context, requesterID int64, stateToken string, from, size int) ([]BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}
	state, err := booking.ParseState(stateToken)
	if err != nil {
		return nil, err
	}
	offset, limit, err := pageWindow(from, size)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	bookings, err := s.bookings.ListForBooker(ctx, requesterID, state, now, booking.Page{Offset: offset, Limit: limit})
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, bookings)
}

// ListForOwner retrieves bookings of the requester's items filtered by
// the state token. A user who owns no items gets a not-found.
func (s *BookingService) ListForOwner(ctx context.Context, requesterID int64, stateToken string, from, size int) ([]BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, requesterID); err != nil {
		return nil, err
	}
	state, err := booking.ParseState(stateToken)
	if err != nil {
		return nil, err
	}
	offset, limit, err := pageWindow(from, size)
	if err != nil {
		return nil, err
	}
	count, err := s.items.CountByOwner(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, domain.NewNotFoundError("Item", "user owns no items")
	}

	now := s.clock()
	bookings, err := s.bookings.ListForOwner(ctx, requesterID, state, now, booking.Page{Offset: offset, Limit: limit})
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, bookings)
}

// assemble resolves item and booker views for a page of bookings with
// two batched lookups, preserving repository order.
func (s *BookingService) assemble(ctx context.Context, bookings []*booking.Booking) ([]BookingDTO, error) {
	itemIDs := make([]int64, 0, len(bookings))
	bookerIDs := make([]int64, 0, len(bookings))
	seenItems := make(map[int64]bool)
	seenBookers := make(map[int64]bool)
	for _, bk := range bookings {
		if !seenItems[bk.ItemID()] {
			seenItems[bk.ItemID()] = true
			itemIDs = append(itemIDs, bk.ItemID())
		}
		if !seenBookers[bk.BookerID()] {
			seenBookers[bk.BookerID()] = true
			bookerIDs = append(bookerIDs, bk.BookerID())
		}
	}

	items, err := s.items.ListByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ListByIDs(ctx, bookerIDs)
	if err != nil {
		return nil, err
	}

	itemsByID := make(map[int64]*item.Item, len(items))
	for _, it := range items {
		itemsByID[it.ID] = it
	}
	usersByID := make(map[int64]*user.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	dtos := make([]BookingDTO, 0, len(bookings))
	for _, bk := range bookings {
		it, ok := itemsByID[bk.ItemID()]
		if !ok {
			return nil, fmt.Errorf("booking %d references missing item %d", bk.ID(), bk.ItemID())
		}
		booker, ok := usersByID[bk.BookerID()]
		if !ok {
			return nil, fmt.Errorf("booking %d references missing user %d", bk.ID(), bk.BookerID())
		}
		dtos = append(dtos, toBookingDTO(bk, it, booker))
	}
	return dtos, nil
}

func (s *BookingService) publish(ctx context.Context, evt events.BookingEvent) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Error("failed to publish booking event",
			zap.String("type", evt.Type),
			zap.Int64("booking_id", evt.BookingID),
			zap.Error(err),
		)
	}
}
