package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shareloop/service-sharing/internal/application"
)

// RequestService is the application contract the request handler needs.
type RequestService interface {
	Create(ctx context.Context, requestorID int64, req application.RequestCreateRequest) (*application.RequestDTO, error)
	ListOwn(ctx context.Context, requestorID int64) ([]application.RequestWithItemsDTO, error)
	ListOthers(ctx context.Context, requestorID int64, from, size int) ([]application.RequestWithItemsDTO, error)
	Get(ctx context.Context, requestID, viewerID int64) (*application.RequestWithItemsDTO, error)
}

// RequestHandler handles HTTP requests for item request operations.
type RequestHandler struct {
	service RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// RegisterRoutes registers all item request routes on the given router
// group.
func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.ListOwn)
		requests.GET("/all", h.ListOthers)
		requests.GET("/:id", h.GetRequest)
	}
}

// CreateRequest handles POST /requests.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req application.RequestCreateRequest
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

// ListOwn handles GET /requests.
func (h *RequestHandler) ListOwn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.service.ListOwn(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListOthers handles GET /requests/all?from=&size=.
func (h *RequestHandler) ListOthers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}

	result, err := h.service.ListOthers(c.Request.Context(), userID, from, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetRequest handles GET /requests/:id.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), requestID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
