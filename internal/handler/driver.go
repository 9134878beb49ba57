package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/domain"
	"fleetflow/internal/repository"
	"fleetflow/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// DriverResponse is the HTTP response for driver operations.
type DriverResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	EmployeeID      string  `json:"employee_id"`
	Phone           string  `json:"phone,omitempty"`
	Email           string  `json:"email,omitempty"`
	LicenseNumber   string  `json:"license_number"`
	LicenseCategory string  `json:"license_category,omitempty"`
	LicenseExpiry   string  `json:"license_expiry"`
	LicenseExpired  bool    `json:"license_expired"`
	SafetyScore     float64 `json:"safety_score"`
	TripsCompleted  int     `json:"trips_completed"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
}

func toDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:              d.ID,
		Name:            d.Name,
		EmployeeID:      d.EmployeeID,
		Phone:           d.Phone,
		Email:           d.Email,
		LicenseNumber:   d.LicenseNumber,
		LicenseCategory: d.LicenseCategory,
		LicenseExpiry:   d.LicenseExpiry.Format("2006-01-02"),
		LicenseExpired:  d.LicenseExpired(time.Now()),
		SafetyScore:     d.SafetyScore,
		TripsCompleted:  d.TripsCompleted,
		Status:          string(d.Status),
		CreatedAt:       d.CreatedAt.Format(time.RFC3339),
	}
}

// CreateDriverRequest is the HTTP request body for registering a driver.
type CreateDriverRequest struct {
	Name            string  `json:"name" binding:"required"`
	EmployeeID      string  `json:"employee_id" binding:"required"`
	Phone           string  `json:"phone"`
	Email           string  `json:"email"`
	LicenseNumber   string  `json:"license_number" binding:"required"`
	LicenseCategory string  `json:"license_category"`
	LicenseExpiry   string  `json:"license_expiry" binding:"required"`
	SafetyScore     float64 `json:"safety_score"`
}

// Create handles POST /v1/drivers
func (h *DriverHandler) Create(c *gin.Context) {
	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	expiry, err := time.Parse("2006-01-02", req.LicenseExpiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "license_expiry must be YYYY-MM-DD"})
		return
	}

	driver, err := h.driverService.CreateDriver(c.Request.Context(), service.CreateDriverRequest{
		Name:            req.Name,
		EmployeeID:      req.EmployeeID,
		Phone:           req.Phone,
		Email:           req.Email,
		LicenseNumber:   req.LicenseNumber,
		LicenseCategory: req.LicenseCategory,
		LicenseExpiry:   expiry,
		SafetyScore:     req.SafetyScore,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toDriverResponse(driver))
}

// Get handles GET /v1/drivers/:id
func (h *DriverHandler) Get(c *gin.Context) {
	driver, err := h.driverService.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDriverResponse(driver))
}

// GetAll handles GET /v1/drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	filter := repository.DriverFilter{
		Status:          domain.DriverStatus(c.Query("status")),
		LicenseCategory: c.Query("license_category"),
	}

	drivers, err := h.driverService.ListDrivers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, toDriverResponse(d))
	}

	respondJSON(c, http.StatusOK, response)
}

// UpdateDriverRequest is the HTTP request body for updating a driver.
type UpdateDriverRequest struct {
	Name            string   `json:"name"`
	Phone           string   `json:"phone"`
	Email           string   `json:"email"`
	LicenseNumber   string   `json:"license_number"`
	LicenseCategory string   `json:"license_category"`
	LicenseExpiry   string   `json:"license_expiry"`
	SafetyScore     *float64 `json:"safety_score"`
}

// Update handles PUT /v1/drivers/:id
func (h *DriverHandler) Update(c *gin.Context) {
	var req UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var expiry time.Time
	if req.LicenseExpiry != "" {
		var err error
		expiry, err = time.Parse("2006-01-02", req.LicenseExpiry)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "license_expiry must be YYYY-MM-DD"})
			return
		}
	}

	driver, err := h.driverService.UpdateDriver(c.Request.Context(), c.Param("id"), service.UpdateDriverRequest{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		LicenseNumber:   req.LicenseNumber,
		LicenseCategory: req.LicenseCategory,
		LicenseExpiry:   expiry,
		SafetyScore:     req.SafetyScore,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDriverResponse(driver))
}

// SetStatus handles PATCH /v1/drivers/:id/status
func (h *DriverHandler) SetStatus(c *gin.Context) {
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	driver, err := h.driverService.SetDriverStatus(c.Request.Context(), c.Param("id"), domain.DriverStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDriverResponse(driver))
}

// Delete handles DELETE /v1/drivers/:id
func (h *DriverHandler) Delete(c *gin.Context) {
	if err := h.driverService.DeleteDriver(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
