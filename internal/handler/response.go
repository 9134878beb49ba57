package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/auth"
	"fleetflow/internal/repository"
	"fleetflow/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidLogID),
		errors.Is(err, service.ErrInvalidCargoWeight),
		errors.Is(err, service.ErrInvalidCapacity),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidLiters),
		errors.Is(err, service.ErrManualOnTrip),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidEmail):
		return http.StatusBadRequest

	// Conflict errors - valid request, wrong current state
	case errors.Is(err, service.ErrVehicleNotAvailable),
		errors.Is(err, service.ErrVehicleOnTrip),
		errors.Is(err, service.ErrDriverNotAvailable),
		errors.Is(err, service.ErrDriverSuspended),
		errors.Is(err, service.ErrDriverOnTrip),
		errors.Is(err, service.ErrTripNotDraft),
		errors.Is(err, service.ErrTripNotDispatched),
		errors.Is(err, service.ErrTripTerminal),
		errors.Is(err, service.ErrMaintenanceResolved),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict

	// Business rule violations - Unprocessable Entity
	case errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrLicenseExpired),
		errors.Is(err, service.ErrOdometerRegression),
		errors.Is(err, service.ErrTripVehicleMismatch):
		return http.StatusUnprocessableEntity

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrUserInactive):
		return http.StatusForbidden

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
