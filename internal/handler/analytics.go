package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/service"
)

// AnalyticsHandler handles HTTP requests for analytics reports.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Dashboard handles GET /v1/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	stats, err := h.analyticsService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, stats)
}

// FuelEfficiency handles GET /v1/analytics/fuel-efficiency
func (h *AnalyticsHandler) FuelEfficiency(c *gin.Context) {
	rows, err := h.analyticsService.FuelEfficiency(c.Request.Context(), c.Query("vehicle_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, rows)
}

// CostPerKm handles GET /v1/analytics/cost-per-km
func (h *AnalyticsHandler) CostPerKm(c *gin.Context) {
	rows, err := h.analyticsService.CostPerKm(c.Request.Context(), c.Query("vehicle_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, rows)
}

// Utilization handles GET /v1/analytics/utilization
func (h *AnalyticsHandler) Utilization(c *gin.Context) {
	rows, err := h.analyticsService.Utilization(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, rows)
}

// DriverPerformance handles GET /v1/analytics/driver-performance
func (h *AnalyticsHandler) DriverPerformance(c *gin.Context) {
	rows, err := h.analyticsService.DriverPerformance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, rows)
}

// FinancialSummary handles GET /v1/analytics/financial-summary
func (h *AnalyticsHandler) FinancialSummary(c *gin.Context) {
	year := time.Now().Year()
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < 2000 || parsed > 2100 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "year must be a four-digit year"})
			return
		}
		year = parsed
	}

	rows, err := h.analyticsService.MonthlyCosts(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, rows)
}
