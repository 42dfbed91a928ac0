package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareloop/service-sharing/internal/application"
)

// ItemService is the application contract the item handler needs.
type ItemService interface {
	Create(ctx context.Context, ownerID int64, req application.ItemCreateRequest) (*application.ItemDTO, error)
	Update(ctx context.Context, itemID, requesterID int64, req application.ItemUpdateRequest) (*application.ItemDTO, error)
	Get(ctx context.Context, itemID, viewerID int64) (*application.ItemDTO, error)
	ListOwned(ctx context.Context, ownerID int64, from, size int) ([]application.ItemDTO, error)
	Search(ctx context.Context, text string, from, size int) ([]application.ItemDTO, error)
	AddComment(ctx context.Context, itemID, authorID int64, req application.CommentCreateRequest) (*application.CommentDTO, error)
}

// ItemHandler handles HTTP requests for item operations.
type ItemHandler struct {
	service ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers all item routes on the given router group.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items")
	{
		items.POST("", h.CreateItem)
		items.PATCH("/:id", h.UpdateItem)
		items.GET("/:id", h.GetItem)
		items.GET("", h.ListOwned)
		items.GET("/search", h.SearchItems)
		items.POST("/:id/comment", h.AddComment)
	}
}

// CreateItem handles POST /items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req application.ItemCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateItem handles PATCH /items/:id.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req application.ItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.Update(c.Request.Context(), itemID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetItem handles GET /items/:id.
func (h *ItemHandler) GetItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), itemID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListOwned handles GET /items?from=&size=.
func (h *ItemHandler) ListOwned(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}

	result, err := h.service.ListOwned(c.Request.Context(), userID, from, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SearchItems handles GET /items/search?text=&from=&size=.
func (h *ItemHandler) SearchItems(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}

	result, err := h.service.Search(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddComment handles POST /items/:id/comment.
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req application.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.AddComment(c.Request.Context(), itemID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
