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

// FuelHandler handles HTTP requests for fuel logs.
type FuelHandler struct {
	fuelService *service.FuelService
}

// NewFuelHandler creates a new FuelHandler.
func NewFuelHandler(fuelService *service.FuelService) *FuelHandler {
	return &FuelHandler{fuelService: fuelService}
}

// FuelResponse is the HTTP response for fuel log operations.
type FuelResponse struct {
	ID             string  `json:"id"`
	VehicleID      string  `json:"vehicle_id"`
	TripID         string  `json:"trip_id,omitempty"`
	Liters         float64 `json:"liters"`
	CostPerLiter   float64 `json:"cost_per_liter"`
	TotalCost      float64 `json:"total_cost"`
	OdometerAtFill float64 `json:"odometer_at_fill,omitempty"`
	Station        string  `json:"station,omitempty"`
	FuelDate       string  `json:"fuel_date"`
	LoggedBy       string  `json:"logged_by,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

func toFuelResponse(f *domain.FuelLog) FuelResponse {
	return FuelResponse{
		ID:             f.ID,
		VehicleID:      f.VehicleID,
		TripID:         f.TripID,
		Liters:         f.Liters,
		CostPerLiter:   f.CostPerLiter,
		TotalCost:      f.TotalCost(),
		OdometerAtFill: f.OdometerAtFill,
		Station:        f.Station,
		FuelDate:       f.FuelDate.Format("2006-01-02"),
		LoggedBy:       f.LoggedBy,
		CreatedAt:      f.CreatedAt.Format(time.RFC3339),
	}
}

// CreateFuelRequest is the HTTP request body for recording a fill.
type CreateFuelRequest struct {
	VehicleID      string  `json:"vehicle_id" binding:"required"`
	TripID         string  `json:"trip_id"`
	Liters         float64 `json:"liters" binding:"required"`
	CostPerLiter   float64 `json:"cost_per_liter"`
	OdometerAtFill float64 `json:"odometer_at_fill"`
	Station        string  `json:"station"`
	FuelDate       string  `json:"fuel_date"`
}

// Create handles POST /v1/fuel
func (h *FuelHandler) Create(c *gin.Context) {
	var req CreateFuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var fuelDate time.Time
	if req.FuelDate != "" {
		var err error
		fuelDate, err = time.Parse("2006-01-02", req.FuelDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "fuel_date must be YYYY-MM-DD"})
			return
		}
	}

	loggedBy := ""
	if claims, ok := middleware.GetClaims(c); ok {
		loggedBy = claims.UserID
	}

	log, err := h.fuelService.CreateFuelLog(c.Request.Context(), service.CreateFuelLogRequest{
		VehicleID:      req.VehicleID,
		TripID:         req.TripID,
		Liters:         req.Liters,
		CostPerLiter:   req.CostPerLiter,
		OdometerAtFill: req.OdometerAtFill,
		Station:        req.Station,
		FuelDate:       fuelDate,
		LoggedBy:       loggedBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toFuelResponse(log))
}

// Get handles GET /v1/fuel/:id
func (h *FuelHandler) Get(c *gin.Context) {
	log, err := h.fuelService.GetFuelLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toFuelResponse(log))
}

// GetAll handles GET /v1/fuel
func (h *FuelHandler) GetAll(c *gin.Context) {
	filter := repository.FuelFilter{
		VehicleID: c.Query("vehicle_id"),
		TripID:    c.Query("trip_id"),
	}

	logs, err := h.fuelService.ListFuelLogs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]FuelResponse, 0, len(logs))
	for _, log := range logs {
		response = append(response, toFuelResponse(log))
	}

	respondJSON(c, http.StatusOK, response)
}

// Delete handles DELETE /v1/fuel/:id
func (h *FuelHandler) Delete(c *gin.Context) {
	if err := h.fuelService.DeleteFuelLog(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
