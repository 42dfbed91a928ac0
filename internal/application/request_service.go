package application

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shareloop/service-sharing/internal/domain"
	"github.com/shareloop/service-sharing/internal/domain/item"
	"github.com/shareloop/service-sharing/internal/domain/request"
	"github.com/shareloop/service-sharing/internal/domain/user"
)

// RequestCreateRequest holds the description of a new item request.
type RequestCreateRequest struct {
	Description string `json:"description"`
}

// RequestService handles item request use cases: wishes posted by users
// and the items other users list in answer.
type RequestService struct {
	requests request.Repository
	users    user.Repository
	items    item.Repository
	logger   *zap.Logger
	clock    func() time.Time
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests request.Repository,
	users user.Repository,
	items item.Repository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		users:    users,
		items:    items,
		logger:   logger,
		clock:    time.Now,
	}
}

// Create posts a new item request.
func (s *RequestService) Create(ctx context.Context, requestorID int64, req RequestCreateRequest) (*RequestDTO, error) {
	if _, err := s.users.FindByID(ctx, requestorID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, domain.NewValidationError("request description is required")
	}

	r := &request.ItemRequest{
		Description: req.Description,
		RequestorID: requestorID,
		Created:     s.clock(),
	}
	if err := s.requests.Save(ctx, r); err != nil {
		return nil, err
	}
	result := toRequestDTO(r)
	return &result, nil
}

// ListOwn retrieves the requester's own requests, newest first, each
// with the items answering it.
func (s *RequestService) ListOwn(ctx context.Context, requestorID int64) ([]RequestWithItemsDTO, error) {
	if _, err := s.users.FindByID(ctx, requestorID); err != nil {
		return nil, err
	}
	requests, err := s.requests.ListByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

// ListOthers retrieves requests posted by other users, newest first,
// paged.
func (s *RequestService) ListOthers(ctx context.Context, requestorID int64, from, size int) ([]RequestWithItemsDTO, error) {
	if _, err := s.users.FindByID(ctx, requestorID); err != nil {
		return nil, err
	}
	offset, limit, err := pageWindow(from, size)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.ListOthers(ctx, requestorID, request.Page{Offset: offset, Limit: limit})
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

// Get retrieves one request with its answering items. Any existing user
// may view any request.
func (s *RequestService) Get(ctx context.Context, requestID, viewerID int64) (*RequestWithItemsDTO, error) {
	if _, err := s.users.FindByID(ctx, viewerID); err != nil {
		return nil, err
	}
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	dtos, err := s.withItems(ctx, []*request.ItemRequest{r})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// withItems attaches answering items to each request with one batched
// lookup.
func (s *RequestService) withItems(ctx context.Context, requests []*request.ItemRequest) ([]RequestWithItemsDTO, error) {
	if len(requests) == 0 {
		return []RequestWithItemsDTO{}, nil
	}

	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	answering, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	itemsByRequest := make(map[int64][]*item.Item)
	for _, it := range answering {
		if it.RequestID == nil {
			continue
		}
		itemsByRequest[*it.RequestID] = append(itemsByRequest[*it.RequestID], it)
	}

	dtos := make([]RequestWithItemsDTO, 0, len(requests))
	for _, r := range requests {
		dtos = append(dtos, toRequestWithItemsDTO(r, itemsByRequest[r.ID]))
	}
	return dtos, nil
}
