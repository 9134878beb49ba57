package auth

import "fleetflow/internal/domain"

// Capability names a guarded operation. Authorization is a pure lookup in a
// static table; nothing below the route middleware ever consults roles.
type Capability string

const (
	CapVehicleWrite  Capability = "vehicle:write"
	CapVehicleStatus Capability = "vehicle:status"
	CapVehicleDelete Capability = "vehicle:delete"

	CapDriverWrite  Capability = "driver:write"
	CapDriverStatus Capability = "driver:status"
	CapDriverDelete Capability = "driver:delete"

	CapTripCreate   Capability = "trip:create"
	CapTripDispatch Capability = "trip:dispatch"
	CapTripComplete Capability = "trip:complete"
	CapTripCancel   Capability = "trip:cancel"

	CapMaintenanceLog     Capability = "maintenance:log"
	CapMaintenanceResolve Capability = "maintenance:resolve"
	CapMaintenanceRelease Capability = "maintenance:release"

	CapFuelLog    Capability = "fuel:log"
	CapFuelDelete Capability = "fuel:delete"

	CapAnalyticsFinance     Capability = "analytics:finance"
	CapAnalyticsUtilization Capability = "analytics:utilization"
	CapAnalyticsDrivers     Capability = "analytics:drivers"

	CapUserAdmin Capability = "user:admin"
)

// capabilities is the full role grant table. MANAGER is intentionally absent:
// managers pass every check. Reads are ungated; every authenticated role can
// list and view.
var capabilities = map[Capability][]domain.Role{
	CapVehicleWrite:  nil,
	CapVehicleStatus: nil,
	CapVehicleDelete: nil,

	CapDriverWrite:  {domain.RoleDispatcher},
	CapDriverStatus: {domain.RoleDispatcher, domain.RoleSafety},
	CapDriverDelete: nil,

	CapTripCreate:   {domain.RoleDispatcher},
	CapTripDispatch: {domain.RoleDispatcher},
	CapTripComplete: {domain.RoleDispatcher},
	CapTripCancel:   {domain.RoleDispatcher},

	CapMaintenanceLog:     {domain.RoleSafety},
	CapMaintenanceResolve: {domain.RoleSafety},
	CapMaintenanceRelease: nil,

	CapFuelLog:    {domain.RoleDispatcher, domain.RoleFinance, domain.RoleDriver},
	CapFuelDelete: {domain.RoleFinance},

	CapAnalyticsFinance:     {domain.RoleFinance},
	CapAnalyticsUtilization: {domain.RoleFinance, domain.RoleDispatcher},
	CapAnalyticsDrivers:     {domain.RoleSafety},

	CapUserAdmin: nil,
}

// Allowed reports whether role may perform cap. Unknown capabilities are
// denied for everyone, managers included.
func Allowed(role domain.Role, cap Capability) bool {
	grants, ok := capabilities[cap]
	if !ok {
		return false
	}
	if role == domain.RoleManager {
		return true
	}
	for _, r := range grants {
		if r == role {
			return true
		}
	}
	return false
}
