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

// MaintenanceHandler handles HTTP requests for maintenance logs.
type MaintenanceHandler struct {
	coordinator *service.Coordinator
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(coordinator *service.Coordinator) *MaintenanceHandler {
	return &MaintenanceHandler{coordinator: coordinator}
}

// MaintenanceResponse is the HTTP response for maintenance operations.
type MaintenanceResponse struct {
	ID                string  `json:"id"`
	VehicleID         string  `json:"vehicle_id"`
	ServiceType       string  `json:"service_type"`
	Description       string  `json:"description,omitempty"`
	Cost              float64 `json:"cost"`
	Vendor            string  `json:"vendor,omitempty"`
	OdometerAtService float64 `json:"odometer_at_service,omitempty"`
	ServiceDate       string  `json:"service_date"`
	Resolved          bool    `json:"resolved"`
	ResolvedAt        string  `json:"resolved_at,omitempty"`
	LoggedBy          string  `json:"logged_by,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

func toMaintenanceResponse(m *domain.MaintenanceLog) MaintenanceResponse {
	resp := MaintenanceResponse{
		ID:                m.ID,
		VehicleID:         m.VehicleID,
		ServiceType:       m.ServiceType,
		Description:       m.Description,
		Cost:              m.Cost,
		Vendor:            m.Vendor,
		OdometerAtService: m.OdometerAtService,
		ServiceDate:       m.ServiceDate.Format("2006-01-02"),
		Resolved:          m.Resolved(),
		LoggedBy:          m.LoggedBy,
		CreatedAt:         m.CreatedAt.Format(time.RFC3339),
	}
	if m.Resolved() {
		resp.ResolvedAt = m.ResolvedAt.Format(time.RFC3339)
	}
	return resp
}

// CreateMaintenanceRequest is the HTTP request body for logging maintenance.
type CreateMaintenanceRequest struct {
	VehicleID         string  `json:"vehicle_id" binding:"required"`
	ServiceType       string  `json:"service_type" binding:"required"`
	Description       string  `json:"description"`
	Cost              float64 `json:"cost"`
	Vendor            string  `json:"vendor"`
	OdometerAtService float64 `json:"odometer_at_service"`
	ServiceDate       string  `json:"service_date"`
}

// Create handles POST /v1/maintenance
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var serviceDate time.Time
	if req.ServiceDate != "" {
		var err error
		serviceDate, err = time.Parse("2006-01-02", req.ServiceDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "service_date must be YYYY-MM-DD"})
			return
		}
	}

	loggedBy := ""
	if claims, ok := middleware.GetClaims(c); ok {
		loggedBy = claims.UserID
	}

	log, err := h.coordinator.LogMaintenance(c.Request.Context(), service.LogMaintenanceRequest{
		VehicleID:         req.VehicleID,
		ServiceType:       req.ServiceType,
		Description:       req.Description,
		Cost:              req.Cost,
		Vendor:            req.Vendor,
		OdometerAtService: req.OdometerAtService,
		ServiceDate:       serviceDate,
		LoggedBy:          loggedBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toMaintenanceResponse(log))
}

// Resolve handles POST /v1/maintenance/:id/resolve
func (h *MaintenanceHandler) Resolve(c *gin.Context) {
	log, err := h.coordinator.ResolveMaintenance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toMaintenanceResponse(log))
}

// Get handles GET /v1/maintenance/:id
func (h *MaintenanceHandler) Get(c *gin.Context) {
	log, err := h.coordinator.GetMaintenanceLog(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toMaintenanceResponse(log))
}

// GetAll handles GET /v1/maintenance
func (h *MaintenanceHandler) GetAll(c *gin.Context) {
	filter := repository.MaintenanceFilter{
		VehicleID: c.Query("vehicle_id"),
	}
	switch c.Query("resolved") {
	case "true":
		resolved := true
		filter.Resolved = &resolved
	case "false":
		resolved := false
		filter.Resolved = &resolved
	}

	logs, err := h.coordinator.ListMaintenanceLogs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]MaintenanceResponse, 0, len(logs))
	for _, log := range logs {
		response = append(response, toMaintenanceResponse(log))
	}

	respondJSON(c, http.StatusOK, response)
}
