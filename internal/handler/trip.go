package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/domain"
	"fleetflow/internal/middleware"
	"fleetflow/internal/repository"
	"fleetflow/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	coordinator *service.Coordinator
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(coordinator *service.Coordinator) *TripHandler {
	return &TripHandler{coordinator: coordinator}
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	ID               string  `json:"id"`
	Code             string  `json:"trip_code"`
	VehicleID        string  `json:"vehicle_id"`
	DriverID         string  `json:"driver_id"`
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
	CargoDescription string  `json:"cargo_description,omitempty"`
	CargoWeightKg    float64 `json:"cargo_weight_kg"`
	StartOdometerKm  float64 `json:"start_odometer_km,omitempty"`
	EndOdometerKm    float64 `json:"end_odometer_km,omitempty"`
	Status           string  `json:"status"`
	Notes            string  `json:"notes,omitempty"`
	CreatedBy        string  `json:"created_by,omitempty"`
	CreatedAt        string  `json:"created_at"`
	DispatchedAt     string  `json:"dispatched_at,omitempty"`
	CompletedAt      string  `json:"completed_at,omitempty"`
}

func toTripResponse(trip *domain.Trip) TripResponse {
	resp := TripResponse{
		ID:               trip.ID,
		Code:             trip.Code,
		VehicleID:        trip.VehicleID,
		DriverID:         trip.DriverID,
		Origin:           trip.Origin,
		Destination:      trip.Destination,
		CargoDescription: trip.CargoDescription,
		CargoWeightKg:    trip.CargoWeightKg,
		StartOdometerKm:  trip.StartOdometerKm,
		EndOdometerKm:    trip.EndOdometerKm,
		Status:           string(trip.Status),
		Notes:            trip.Notes,
		CreatedBy:        trip.CreatedBy,
		CreatedAt:        trip.CreatedAt.Format(time.RFC3339),
	}
	if !trip.DispatchedAt.IsZero() {
		resp.DispatchedAt = trip.DispatchedAt.Format(time.RFC3339)
	}
	if !trip.CompletedAt.IsZero() {
		resp.CompletedAt = trip.CompletedAt.Format(time.RFC3339)
	}
	return resp
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	VehicleID        string  `json:"vehicle_id" binding:"required"`
	DriverID         string  `json:"driver_id" binding:"required"`
	Origin           string  `json:"origin" binding:"required"`
	Destination      string  `json:"destination" binding:"required"`
	CargoDescription string  `json:"cargo_description"`
	CargoWeightKg    float64 `json:"cargo_weight_kg" binding:"required"`
	Notes            string  `json:"notes"`
}

// CreateTrip handles POST /v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	createdBy := ""
	if claims, ok := middleware.GetClaims(c); ok {
		createdBy = claims.UserID
	}

	trip, err := h.coordinator.CreateTrip(c.Request.Context(), service.CreateTripRequest{
		VehicleID:        req.VehicleID,
		DriverID:         req.DriverID,
		Origin:           req.Origin,
		Destination:      req.Destination,
		CargoDescription: req.CargoDescription,
		CargoWeightKg:    req.CargoWeightKg,
		Notes:            req.Notes,
		CreatedBy:        createdBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(trip))
}

// DispatchTripRequest is the HTTP request body for dispatching a trip.
type DispatchTripRequest struct {
	StartOdometerKm float64 `json:"start_odometer_km"`
}

// DispatchTrip handles POST /v1/trips/:id/dispatch
func (h *TripHandler) DispatchTrip(c *gin.Context) {
	var req DispatchTripRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	trip, err := h.coordinator.DispatchTrip(c.Request.Context(), service.DispatchTripRequest{
		TripID:          c.Param("id"),
		StartOdometerKm: req.StartOdometerKm,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// CompleteTripRequest is the HTTP request body for completing a trip.
type CompleteTripRequest struct {
	EndOdometerKm float64 `json:"end_odometer_km"`
	Notes         string  `json:"notes"`
}

// CompleteTrip handles POST /v1/trips/:id/complete
func (h *TripHandler) CompleteTrip(c *gin.Context) {
	var req CompleteTripRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	trip, err := h.coordinator.CompleteTrip(c.Request.Context(), service.CompleteTripRequest{
		TripID:        c.Param("id"),
		EndOdometerKm: req.EndOdometerKm,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// CancelTrip handles POST /v1/trips/:id/cancel
func (h *TripHandler) CancelTrip(c *gin.Context) {
	trip, err := h.coordinator.CancelTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.coordinator.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// GetAll handles GET /v1/trips
func (h *TripHandler) GetAll(c *gin.Context) {
	filter := repository.TripFilter{
		Status:    domain.TripStatus(c.Query("status")),
		VehicleID: c.Query("vehicle_id"),
		DriverID:  c.Query("driver_id"),
	}

	trips, err := h.coordinator.ListTrips(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		response = append(response, toTripResponse(trip))
	}

	respondJSON(c, http.StatusOK, response)
}
