package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"calmanage/internal/calendar"
	"calmanage/internal/repository"
	"calmanage/internal/response"
	"calmanage/internal/service"

	"github.com/gin-gonic/gin"
)

// optionalIntParam reads a path parameter that may be absent because the
// route is registered both with and without date segments.
func optionalIntParam(c *gin.Context, name string) (*int, bool) {
	raw := c.Param(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &value, true
}

func idParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value < 1 {
		return 0, false
	}
	return uint(value), true
}

func invalidDate(c *gin.Context) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{
		Code:    "INVALID_DATE",
		Message: "Invalid date parameters",
	})
}

// handleServiceError maps service and repository errors onto the API error
// taxonomy. notFoundCode names the resource the request addressed.
func handleServiceError(c *gin.Context, err error, notFoundCode, notFoundMessage string) {
	switch {
	case errors.Is(err, calendar.ErrInvalidDate):
		invalidDate(c)
	case errors.Is(err, calendar.ErrInvalidTimeWindow):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_TIME_WINDOW",
			Message: "End time must be after start time",
			Details: "end_date_time",
		})
	case errors.Is(err, service.ErrCreatorNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "USER_NOT_FOUND",
			Message: "Creator not found",
		})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "EMAIL_EXISTS",
			Message: "A user with this email already exists",
			Details: "email",
		})
	case errors.Is(err, service.ErrUserHasEvents):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "USER_HAS_EVENTS",
			Message: "User has created events and cannot be deleted",
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    notFoundCode,
			Message: notFoundMessage,
		})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Storage failure",
			Details: err.Error(),
		})
	}
}
