// Package handler exposes the HTTP surface. Each domain error type maps
// to exactly one status code here; services stay transport-agnostic.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shareloop/service-sharing/internal/domain"
)

// headerUserID carries the id of the acting user on every guarded route.
const headerUserID = "X-Sharer-User-Id"

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"description,omitempty"`
}

func respondError(c *gin.Context, err error) {
	var (
		notFound     *domain.NotFoundError
		ownership    *domain.OwnershipError
		forbidden    *domain.ForbiddenError
		validation   *domain.ValidationError
		statusUpdate *domain.StatusUpdateError
		emailExists  *domain.EmailExistsError
		unknownState *domain.UnknownStateError
		pagination   *domain.PaginationError
	)

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	// Ownership violations are reported as not-found so that existence
	// is not leaked to unrelated parties.
	case errors.As(err, &ownership):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.As(err, &emailExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.As(err, &validation),
		errors.As(err, &statusUpdate),
		errors.As(err, &unknownState),
		errors.As(err, &pagination):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// currentUserID reads the acting user's id from the X-Sharer-User-Id
// header. A missing or malformed header is a bad request.
func currentUserID(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(headerUserID)
	if raw == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing " + headerUserID + " header"})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed " + headerUserID + " header"})
		return 0, false
	}
	return id, true
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

// pageParams reads the from/size query parameters with their defaults.
// Range checks live in the application layer.
func pageParams(c *gin.Context) (from, size int, ok bool) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from parameter"})
		return 0, 0, false
	}
	size, err = strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid size parameter"})
		return 0, 0, false
	}
	return from, size, true
}
