package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"fleetflow/internal/auth"
	"fleetflow/internal/handler"
	"fleetflow/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthService        *auth.Service
	AuthHandler        *handler.AuthHandler
	VehicleHandler     *handler.VehicleHandler
	DriverHandler      *handler.DriverHandler
	TripHandler        *handler.TripHandler
	MaintenanceHandler *handler.MaintenanceHandler
	FuelHandler        *handler.FuelHandler
	AnalyticsHandler   *handler.AnalyticsHandler
	RedisClient        *redis.Client
	NewRelicApp        *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.Idempotency(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authed := middleware.Authenticate(deps.AuthService)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", deps.AuthHandler.Register)
			authGroup.POST("/login", deps.AuthHandler.Login)
			authGroup.GET("/me", authed, deps.AuthHandler.Me)
			authGroup.GET("/users", authed, middleware.Authorize(auth.CapUserAdmin), deps.AuthHandler.ListUsers)
			authGroup.PATCH("/users/:id/toggle", authed, middleware.Authorize(auth.CapUserAdmin), deps.AuthHandler.ToggleUser)
		}

		// Vehicle routes.
		vehicles := v1.Group("/vehicles", authed)
		{
			vehicles.GET("", deps.VehicleHandler.GetAll)
			vehicles.GET("/:id", deps.VehicleHandler.Get)
			vehicles.POST("", middleware.Authorize(auth.CapVehicleWrite), deps.VehicleHandler.Create)
			vehicles.PUT("/:id", middleware.Authorize(auth.CapVehicleWrite), deps.VehicleHandler.Update)
			vehicles.PATCH("/:id/status", middleware.Authorize(auth.CapVehicleStatus), deps.VehicleHandler.SetStatus)
			vehicles.DELETE("/:id", middleware.Authorize(auth.CapVehicleDelete), deps.VehicleHandler.Delete)
		}

		// Driver routes.
		drivers := v1.Group("/drivers", authed)
		{
			drivers.GET("", deps.DriverHandler.GetAll)
			drivers.GET("/:id", deps.DriverHandler.Get)
			drivers.POST("", middleware.Authorize(auth.CapDriverWrite), deps.DriverHandler.Create)
			drivers.PUT("/:id", middleware.Authorize(auth.CapDriverWrite), deps.DriverHandler.Update)
			drivers.PATCH("/:id/status", middleware.Authorize(auth.CapDriverStatus), deps.DriverHandler.SetStatus)
			drivers.DELETE("/:id", middleware.Authorize(auth.CapDriverDelete), deps.DriverHandler.Delete)
		}

		// Trip routes.
		trips := v1.Group("/trips", authed)
		{
			trips.GET("", deps.TripHandler.GetAll)
			trips.GET("/:id", deps.TripHandler.GetTrip)
			trips.POST("", middleware.Authorize(auth.CapTripCreate), deps.TripHandler.CreateTrip)
			trips.POST("/:id/dispatch", middleware.Authorize(auth.CapTripDispatch), deps.TripHandler.DispatchTrip)
			trips.POST("/:id/complete", middleware.Authorize(auth.CapTripComplete), deps.TripHandler.CompleteTrip)
			trips.POST("/:id/cancel", middleware.Authorize(auth.CapTripCancel), deps.TripHandler.CancelTrip)
		}

		// Maintenance routes.
		maintenance := v1.Group("/maintenance", authed)
		{
			maintenance.GET("", deps.MaintenanceHandler.GetAll)
			maintenance.GET("/:id", deps.MaintenanceHandler.Get)
			maintenance.POST("", middleware.Authorize(auth.CapMaintenanceLog), deps.MaintenanceHandler.Create)
			maintenance.POST("/:id/resolve", middleware.Authorize(auth.CapMaintenanceResolve), deps.MaintenanceHandler.Resolve)
			maintenance.POST("/release/:vehicle_id", middleware.Authorize(auth.CapMaintenanceRelease), deps.VehicleHandler.Release)
		}

		// Fuel routes.
		fuel := v1.Group("/fuel", authed)
		{
			fuel.GET("", deps.FuelHandler.GetAll)
			fuel.GET("/:id", deps.FuelHandler.Get)
			fuel.POST("", middleware.Authorize(auth.CapFuelLog), deps.FuelHandler.Create)
			fuel.DELETE("/:id", middleware.Authorize(auth.CapFuelDelete), deps.FuelHandler.Delete)
		}

		// Analytics routes.
		analytics := v1.Group("/analytics", authed)
		{
			analytics.GET("/dashboard", deps.AnalyticsHandler.Dashboard)
			analytics.GET("/fuel-efficiency", middleware.Authorize(auth.CapAnalyticsFinance), deps.AnalyticsHandler.FuelEfficiency)
			analytics.GET("/cost-per-km", middleware.Authorize(auth.CapAnalyticsFinance), deps.AnalyticsHandler.CostPerKm)
			analytics.GET("/utilization", middleware.Authorize(auth.CapAnalyticsUtilization), deps.AnalyticsHandler.Utilization)
			analytics.GET("/driver-performance", middleware.Authorize(auth.CapAnalyticsDrivers), deps.AnalyticsHandler.DriverPerformance)
			analytics.GET("/financial-summary", middleware.Authorize(auth.CapAnalyticsFinance), deps.AnalyticsHandler.FinancialSummary)
		}
	}

	return router
}
