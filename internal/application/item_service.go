package application

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shareloop/service-sharing/internal/domain"
	"github.com/shareloop/service-sharing/internal/domain/booking"
	"github.com/shareloop/service-sharing/internal/domain/item"
	"github.com/shareloop/service-sharing/internal/domain/user"
)

// ItemCreateRequest holds the data needed to list an item.
type ItemCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

// ItemUpdateRequest holds a partial item update.
type ItemUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CommentCreateRequest holds the text of a new comment.
type CommentCreateRequest struct {
	Text string `json:"text"`
}

// ItemService handles item catalog use cases, including the last/next
// booking summaries shown to item owners.
type ItemService struct {
	items    item.Repository
	users    user.Repository
	comments item.CommentRepository
	bookings booking.Repository
	logger   *zap.Logger
	clock    func() time.Time
}

// NewItemService creates a new ItemService.
func NewItemService(
	items item.Repository,
	users user.Repository,
	comments item.CommentRepository,
	bookings booking.Repository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		comments: comments,
		bookings: bookings,
		logger:   logger,
		clock:    time.Now,
	}
}

// Create lists a new item owned by the given user.
func (s *ItemService) Create(ctx context.Context, ownerID int64, req ItemCreateRequest) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" || req.Available == nil {
		return nil, domain.NewValidationError("name, description and available are required")
	}

	it := &item.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.items.Save(ctx, it); err != nil {
		return nil, err
	}
	result := toItemDTO(it, nil, nil, nil)
	return &result, nil
}

// Update applies a partial update. Only the owner may update an item.
func (s *ItemService) Update(ctx context.Context, itemID, requesterID int64, req ItemUpdateRequest) (*ItemDTO, error) {
	if req.Name == nil && req.Description == nil && req.Available == nil {
		return nil, domain.NewValidationError("no changes provided")
	}
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != requesterID {
		return nil, domain.NewForbiddenError("item belongs to another user")
	}

	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}
	result := toItemDTO(it, nil, nil, nil)
	return &result, nil
}

// Get retrieves an item with its comments. The last/next booking
// summaries are visible only to the item's owner.
func (s *ItemService) Get(ctx context.Context, itemID, viewerID int64) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, viewerID); err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentDTOs(ctx, itemID)
	if err != nil {
		return nil, err
	}

	var last, next *booking.Booking
	if viewerID == it.OwnerID {
		now := s.clock()
		if last, err = s.bookings.LastForItem(ctx, itemID, now); err != nil {
			return nil, err
		}
		if next, err = s.bookings.NextForItem(ctx, itemID, now); err != nil {
			return nil, err
		}
	}

	result := toItemDTO(it, last, next, comments)
	return &result, nil
}

// ListOwned retrieves the requester's items with comments and last/next
// booking summaries.
func (s *ItemService) ListOwned(ctx context.Context, ownerID int64, from, size int) ([]ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	offset, limit, err := pageWindow(from, size)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByOwner(ctx, ownerID, item.Page{Offset: offset, Limit: limit})
	if err != nil {
		return nil, err
	}

	now := s.clock()
	dtos := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		comments, err := s.commentDTOs(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		last, err := s.bookings.LastForItem(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.NextForItem(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, toItemDTO(it, last, next, comments))
	}
	return dtos, nil
}

// Search retrieves available items matching the text. Blank text yields
// an empty list.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]ItemDTO, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemDTO{}, nil
	}
	offset, limit, err := pageWindow(from, size)
	if err != nil {
		return nil, err
	}
	items, err := s.items.Search(ctx, text, item.Page{Offset: offset, Limit: limit})
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, toItemDTO(it, nil, nil, nil))
	}
	return dtos, nil
}

// AddComment posts a comment on an item. The author must have a
// non-rejected booking of the item that started before now.
func (s *ItemService) AddComment(ctx context.Context, itemID, authorID int64, req CommentCreateRequest) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, domain.NewValidationError("comment text is required")
	}

	now := s.clock()
	booked, err := s.bookings.ExistsFinishedFor(ctx, it.ID, authorID, now)
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, domain.NewValidationError("user has no booking of this item to comment on")
	}

	c := &item.Comment{
		Text:     req.Text,
		ItemID:   it.ID,
		AuthorID: authorID,
		Created:  now,
	}
	if err := s.comments.Save(ctx, c); err != nil {
		return nil, err
	}
	result := toCommentDTO(c, author.Name)
	return &result, nil
}

// commentDTOs loads an item's comments with their author names.
func (s *ItemService) commentDTOs(ctx context.Context, itemID int64) ([]CommentDTO, error) {
	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return []CommentDTO{}, nil
	}

	authorIDs := make([]int64, 0, len(comments))
	seen := make(map[int64]bool)
	for _, c := range comments {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}
	authors, err := s.users.ListByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	namesByID := make(map[int64]string, len(authors))
	for _, u := range authors {
		namesByID[u.ID] = u.Name
	}

	dtos := make([]CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, toCommentDTO(c, namesByID[c.AuthorID]))
	}
	return dtos, nil
}
