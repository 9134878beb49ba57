package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
	"fleetflow/internal/service"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	vehicleService *service.VehicleService
	coordinator    *service.Coordinator
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService *service.VehicleService, coordinator *service.Coordinator) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService, coordinator: coordinator}
}

// VehicleResponse is the HTTP response for vehicle operations.
type VehicleResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Model           string  `json:"model,omitempty"`
	LicensePlate    string  `json:"license_plate"`
	Type            string  `json:"type"`
	MaxCapacityKg   float64 `json:"max_capacity_kg"`
	OdometerKm      float64 `json:"odometer_km"`
	AcquisitionCost float64 `json:"acquisition_cost,omitempty"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
}

func toVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:              v.ID,
		Name:            v.Name,
		Model:           v.Model,
		LicensePlate:    v.LicensePlate,
		Type:            string(v.Type),
		MaxCapacityKg:   v.MaxCapacityKg,
		OdometerKm:      v.OdometerKm,
		AcquisitionCost: v.AcquisitionCost,
		Status:          string(v.Status),
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
}

// CreateVehicleRequest is the HTTP request body for registering a vehicle.
type CreateVehicleRequest struct {
	Name            string  `json:"name" binding:"required"`
	Model           string  `json:"model"`
	LicensePlate    string  `json:"license_plate" binding:"required"`
	Type            string  `json:"type"`
	MaxCapacityKg   float64 `json:"max_capacity_kg" binding:"required"`
	OdometerKm      float64 `json:"odometer_km"`
	AcquisitionCost float64 `json:"acquisition_cost"`
}

// Create handles POST /v1/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), service.CreateVehicleRequest{
		Name:            req.Name,
		Model:           req.Model,
		LicensePlate:    req.LicensePlate,
		Type:            domain.VehicleType(req.Type),
		MaxCapacityKg:   req.MaxCapacityKg,
		OdometerKm:      req.OdometerKm,
		AcquisitionCost: req.AcquisitionCost,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toVehicleResponse(vehicle))
}

// Get handles GET /v1/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toVehicleResponse(vehicle))
}

// GetAll handles GET /v1/vehicles
func (h *VehicleHandler) GetAll(c *gin.Context) {
	filter := repository.VehicleFilter{
		Status: domain.VehicleStatus(c.Query("status")),
		Type:   domain.VehicleType(c.Query("type")),
	}

	vehicles, err := h.vehicleService.ListVehicles(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, toVehicleResponse(v))
	}

	respondJSON(c, http.StatusOK, response)
}

// UpdateVehicleRequest is the HTTP request body for updating a vehicle.
type UpdateVehicleRequest struct {
	Name            string  `json:"name"`
	Model           string  `json:"model"`
	MaxCapacityKg   float64 `json:"max_capacity_kg"`
	AcquisitionCost float64 `json:"acquisition_cost"`
}

// Update handles PUT /v1/vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), c.Param("id"), service.UpdateVehicleRequest{
		Name:            req.Name,
		Model:           req.Model,
		MaxCapacityKg:   req.MaxCapacityKg,
		AcquisitionCost: req.AcquisitionCost,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toVehicleResponse(vehicle))
}

// SetStatusRequest is the HTTP request body for a status change.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus handles PATCH /v1/vehicles/:id/status
func (h *VehicleHandler) SetStatus(c *gin.Context) {
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	vehicle, err := h.vehicleService.SetVehicleStatus(c.Request.Context(), c.Param("id"), domain.VehicleStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toVehicleResponse(vehicle))
}

// Delete handles DELETE /v1/vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Release handles POST /v1/maintenance/release/:vehicle_id
func (h *VehicleHandler) Release(c *gin.Context) {
	vehicle, err := h.coordinator.ReleaseVehicle(c.Request.Context(), c.Param("vehicle_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toVehicleResponse(vehicle))
}
