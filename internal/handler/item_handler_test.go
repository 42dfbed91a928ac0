package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareloop/service-sharing/internal/application"
	"github.com/shareloop/service-sharing/internal/domain"
)

type stubItemService struct {
	createFn     func(ctx context.Context, ownerID int64, req application.ItemCreateRequest) (*application.ItemDTO, error)
	updateFn     func(ctx context.Context, itemID, requesterID int64, req application.ItemUpdateRequest) (*application.ItemDTO, error)
	getFn        func(ctx context.Context, itemID, viewerID int64) (*application.ItemDTO, error)
	listOwnedFn  func(ctx context.Context, ownerID int64, from, size int) ([]application.ItemDTO, error)
	searchFn     func(ctx context.Context, text string, from, size int) ([]application.ItemDTO, error)
	addCommentFn func(ctx context.Context, itemID, authorID int64, req application.CommentCreateRequest) (*application.CommentDTO, error)
}

func (s *stubItemService) Create(ctx context.Context, ownerID int64, req application.ItemCreateRequest) (*application.ItemDTO, error) {
	return s.createFn(ctx, ownerID, req)
}

func (s *stubItemService) Update(ctx context.Context, itemID, requesterID int64, req application.ItemUpdateRequest) (*application.ItemDTO, error) {
	return s.updateFn(ctx, itemID, requesterID, req)
}

func (s *stubItemService) Get(ctx context.Context, itemID, viewerID int64) (*application.ItemDTO, error) {
	return s.getFn(ctx, itemID, viewerID)
}

func (s *stubItemService) ListOwned(ctx context.Context, ownerID int64, from, size int) ([]application.ItemDTO, error) {
	return s.listOwnedFn(ctx, ownerID, from, size)
}

func (s *stubItemService) Search(ctx context.Context, text string, from, size int) ([]application.ItemDTO, error) {
	return s.searchFn(ctx, text, from, size)
}

func (s *stubItemService) AddComment(ctx context.Context, itemID, authorID int64, req application.CommentCreateRequest) (*application.CommentDTO, error) {
	return s.addCommentFn(ctx, itemID, authorID, req)
}

func newItemRouter(svc ItemService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewItemHandler(svc).RegisterRoutes(r.Group(""))
	return r
}

func TestUpdateItem_NonOwnerForbidden(t *testing.T) {
	svc := &stubItemService{
		updateFn: func(context.Context, int64, int64, application.ItemUpdateRequest) (*application.ItemDTO, error) {
			return nil, domain.NewForbiddenError("item belongs to another user")
		},
	}
	router := newItemRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/items/10", strings.NewReader(`{"name":"New"}`))
	req.Header.Set(headerUserID, "2")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetItem_SummariesPresentForOwner(t *testing.T) {
	svc := &stubItemService{
		getFn: func(_ context.Context, itemID, viewerID int64) (*application.ItemDTO, error) {
			assert.Equal(t, int64(10), itemID)
			assert.Equal(t, int64(1), viewerID)
			return &application.ItemDTO{
				ID:          10,
				Name:        "Drill",
				LastBooking: &application.BookingSummaryDTO{ID: 4, BookerID: 2},
				Comments:    []application.CommentDTO{},
			}, nil
		},
	}
	router := newItemRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/items/10", nil)
	req.Header.Set(headerUserID, "1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEqual(t, "null", string(body["lastBooking"]))
	// Absent summary still serializes, as null.
	assert.Equal(t, "null", string(body["nextBooking"]))
}

func TestSearchItems_PassesText(t *testing.T) {
	svc := &stubItemService{
		searchFn: func(_ context.Context, text string, from, size int) ([]application.ItemDTO, error) {
			assert.Equal(t, "drill", text)
			assert.Equal(t, 0, from)
			assert.Equal(t, 10, size)
			return []application.ItemDTO{}, nil
		},
	}
	router := newItemRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/items/search?text=drill", nil)
	req.Header.Set(headerUserID, "2")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAddComment_GateFailureIsBadRequest(t *testing.T) {
	svc := &stubItemService{
		addCommentFn: func(context.Context, int64, int64, application.CommentCreateRequest) (*application.CommentDTO, error) {
			return nil, domain.NewValidationError("user has no booking of this item to comment on")
		},
	}
	router := newItemRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/items/10/comment", strings.NewReader(`{"text":"nice"}`))
	req.Header.Set(headerUserID, "2")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
