package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/shareloop/service-sharing/internal/domain"
	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ItemID    int64     `gorm:"index;not null"`
	BookerID  int64     `gorm:"index;not null"`
	StartDate time.Time `gorm:"not null;index"`
	EndDate   time.Time `gorm:"not null"`
	Status    string    `gorm:"size:10;not null;index"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of the booking
// ledger.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking and assigns its id.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	bk.SetID(model.ID)
	return nil
}

// FindByID retrieves a booking by id.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to find booking by id: %w", err)
	}
	return toDomainBooking(&model)
}

// DecideStatus moves a WAITING booking to the target status with a single
// conditional update, so concurrent approve/reject calls resolve to
// exactly one winner.
func (r *GormBookingRepository) DecideStatus(ctx context.Context, id int64, target bookingDomain.Status) (*bookingDomain.Booking, error) {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status = ?", id, string(bookingDomain.StatusWaiting)).
		Update("status", string(target))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.NewStatusUpdateError("booking is already decided")
	}
	return r.FindByID(ctx, id)
}

// ListForBooker retrieves the booker's bookings filtered by state.
func (r *GormBookingRepository) ListForBooker(ctx context.Context, bookerID int64, state bookingDomain.State, now time.Time, page bookingDomain.Page) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("bookings.booker_id = ?", bookerID)
	return r.list(applyStateFilter(q, state, now), page)
}

// ListForOwner retrieves bookings of items owned by the user, filtered by
// state.
func (r *GormBookingRepository) ListForOwner(ctx context.Context, ownerID int64, state bookingDomain.State, now time.Time, page bookingDomain.Page) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
	return r.list(applyStateFilter(q, state, now), page)
}

// LastForItem returns the most recent non-rejected booking of the item
// that ended before now, or nil if there is none.
func (r *GormBookingRepository) LastForItem(ctx context.Context, itemID int64, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND end_date < ? AND status <> ?", itemID, now, string(bookingDomain.StatusRejected)).
		Order("start_date DESC, id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find last booking: %w", err)
	}
	return toDomainBooking(&model)
}

// NextForItem returns the earliest non-rejected booking of the item that
// starts after now, or nil if there is none.
func (r *GormBookingRepository) NextForItem(ctx context.Context, itemID int64, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND start_date > ? AND status <> ?", itemID, now, string(bookingDomain.StatusRejected)).
		Order("start_date ASC, id ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find next booking: %w", err)
	}
	return toDomainBooking(&model)
}

// ExistsFinishedFor reports whether a non-rejected booking of the item by
// the booker started before the given instant.
func (r *GormBookingRepository) ExistsFinishedFor(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("item_id = ? AND booker_id = ? AND status <> ? AND start_date < ?",
			itemID, bookerID, string(bookingDomain.StatusRejected), before).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check booking existence: %w", err)
	}
	return count > 0, nil
}

func (r *GormBookingRepository) list(q *gorm.DB, page bookingDomain.Page) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := q.
		Order("bookings.start_date DESC, bookings.id DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

// applyStateFilter is the single dispatch point for the state token:
// each token adds at most one temporal or status predicate on top of the
// role filter already applied by the caller.
func applyStateFilter(q *gorm.DB, state bookingDomain.State, now time.Time) *gorm.DB {
	switch state {
	case bookingDomain.StateCurrent:
		return q.Where("bookings.start_date < ? AND bookings.end_date > ?", now, now)
	case bookingDomain.StatePast:
		return q.Where("bookings.end_date < ?", now)
	case bookingDomain.StateFuture:
		return q.Where("bookings.start_date > ?", now)
	case bookingDomain.StateWaiting:
		return q.Where("bookings.status = ?", string(bookingDomain.StatusWaiting))
	case bookingDomain.StateRejected:
		return q.Where("bookings.status = ?", string(bookingDomain.StatusRejected))
	default: // StateAll
		return q
	}
}

// --- Conversion helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		StartDate: bk.Start(),
		EndDate:   bk.End(),
		Status:    string(bk.Status()),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.Reconstruct(m.ID, m.ItemID, m.BookerID, m.StartDate, m.EndDate, status), nil
}
