package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/shareloop/service-sharing/internal/domain"
	requestDomain "github.com/shareloop/service-sharing/internal/domain/request"
)

// RequestModel is the GORM model for the requests table.
type RequestModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Description string    `gorm:"size:1000;not null"`
	RequestorID int64     `gorm:"index;not null"`
	Created     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RequestModel) TableName() string {
	return "requests"
}

// GormRequestRepository is the GORM-based implementation of item-request
// storage.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Save persists a new request and assigns its id.
func (r *GormRequestRepository) Save(ctx context.Context, req *requestDomain.ItemRequest) error {
	model := &RequestModel{
		Description: req.Description,
		RequestorID: req.RequestorID,
		Created:     req.Created,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}
	req.ID = model.ID
	return nil
}

// FindByID retrieves a request by id.
func (r *GormRequestRepository) FindByID(ctx context.Context, id int64) (*requestDomain.ItemRequest, error) {
	var model RequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Request", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to find request by id: %w", err)
	}
	return toDomainRequest(&model), nil
}

// ListByRequestor retrieves the user's own requests, newest first.
func (r *GormRequestRepository) ListByRequestor(ctx context.Context, requestorID int64) ([]*requestDomain.ItemRequest, error) {
	var models []RequestModel
	if err := r.db.WithContext(ctx).
		Where("requestor_id = ?", requestorID).
		Order("created DESC, id DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return toDomainRequests(models), nil
}

// ListOthers retrieves other users' requests, newest first.
func (r *GormRequestRepository) ListOthers(ctx context.Context, requestorID int64, page requestDomain.Page) ([]*requestDomain.ItemRequest, error) {
	var models []RequestModel
	if err := r.db.WithContext(ctx).
		Where("requestor_id <> ?", requestorID).
		Order("created DESC, id DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list other requests: %w", err)
	}
	return toDomainRequests(models), nil
}

func toDomainRequest(m *RequestModel) *requestDomain.ItemRequest {
	return &requestDomain.ItemRequest{
		ID:          m.ID,
		Description: m.Description,
		RequestorID: m.RequestorID,
		Created:     m.Created,
	}
}

func toDomainRequests(models []RequestModel) []*requestDomain.ItemRequest {
	requests := make([]*requestDomain.ItemRequest, len(models))
	for i, m := range models {
		requests[i] = toDomainRequest(&m)
	}
	return requests
}
