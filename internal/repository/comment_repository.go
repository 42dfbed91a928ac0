package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Text     string    `gorm:"size:1000;not null"`
	ItemID   int64     `gorm:"index;not null"`
	AuthorID int64     `gorm:"index;not null"`
	Created  time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

// GormCommentRepository is the GORM-based implementation of comment
// storage.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save persists a new comment and assigns its id.
func (r *GormCommentRepository) Save(ctx context.Context, c *itemDomain.Comment) error {
	model := &CommentModel{
		Text:     c.Text,
		ItemID:   c.ItemID,
		AuthorID: c.AuthorID,
		Created:  c.Created,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	c.ID = model.ID
	return nil
}

// ListByItem retrieves an item's comments, oldest first.
func (r *GormCommentRepository) ListByItem(ctx context.Context, itemID int64) ([]*itemDomain.Comment, error) {
	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return toDomainComments(models), nil
}

// ListByItemIDs retrieves comments for all given items, oldest first.
func (r *GormCommentRepository) ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*itemDomain.Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Where("item_id IN ?", itemIDs).
		Order("created ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments by item ids: %w", err)
	}
	return toDomainComments(models), nil
}

func toDomainComments(models []CommentModel) []*itemDomain.Comment {
	comments := make([]*itemDomain.Comment, len(models))
	for i, m := range models {
		comments[i] = &itemDomain.Comment{
			ID:       m.ID,
			Text:     m.Text,
			ItemID:   m.ItemID,
			AuthorID: m.AuthorID,
			Created:  m.Created,
		}
	}
	return comments
}
