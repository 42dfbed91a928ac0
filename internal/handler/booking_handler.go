package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shareloop/service-sharing/internal/application"
)

// BookingService is the application contract the booking handler needs.
type BookingService interface {
	Create(ctx context.Context, bookerID int64, req application.BookingCreateRequest) (*application.BookingDTO, error)
	ChangeStatus(ctx context.Context, bookingID, requesterID int64, approve bool) (*application.BookingDTO, error)
	Get(ctx context.Context, bookingID, requesterID int64) (*application.BookingDTO, error)
	ListForBooker(ctx context.Context, requesterID int64, stateToken string, from, size int) ([]application.BookingDTO, error)
	ListForOwner(ctx context.Context, requesterID int64, stateToken string, from, size int) ([]application.BookingDTO, error)
}

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.PATCH("/:id", h.ChangeStatus)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("", h.ListForBooker)
		bookings.GET("/owner", h.ListForOwner)
	}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req application.BookingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	// Boundary validation only: the period must not start in the past.
	// Ordering of the remaining checks belongs to the service.
	now := time.Now()
	if (req.Start != nil && req.Start.Before(now)) || (req.End != nil && !req.End.After(now)) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "booking period must not be in the past"})
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ChangeStatus handles PATCH /bookings/:id?approved={true|false}.
func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	approve, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "approved parameter must be true or false"})
		return
	}

	result, err := h.service.ChangeStatus(c.Request.Context(), bookingID, userID, approve)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Get(c.Request.Context(), bookingID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListForBooker handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) ListForBooker(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}
	state := c.DefaultQuery("state", "ALL")

	result, err := h.service.ListForBooker(c.Request.Context(), userID, state, from, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListForOwner handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	from, size, ok := pageParams(c)
	if !ok {
		return
	}
	state := c.DefaultQuery("state", "ALL")

	result, err := h.service.ListForOwner(c.Request.Context(), userID, state, from, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
