package handler

import (
	"errors"
	"net/http"
	"testing"

	"fleetflow/internal/auth"
	"fleetflow/internal/repository"
	"fleetflow/internal/service"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want int
	}{
		{repository.ErrNotFound, http.StatusNotFound},

		{service.ErrInvalidCargoWeight, http.StatusBadRequest},
		{service.ErrInvalidCapacity, http.StatusBadRequest},
		{service.ErrInvalidLiters, http.StatusBadRequest},
		{service.ErrManualOnTrip, http.StatusBadRequest},
		{auth.ErrWeakPassword, http.StatusBadRequest},
		{auth.ErrInvalidEmail, http.StatusBadRequest},

		{service.ErrVehicleNotAvailable, http.StatusConflict},
		{service.ErrDriverSuspended, http.StatusConflict},
		{service.ErrTripNotDraft, http.StatusConflict},
		{service.ErrTripTerminal, http.StatusConflict},
		{service.ErrMaintenanceResolved, http.StatusConflict},
		{repository.ErrDuplicate, http.StatusConflict},

		{service.ErrCapacityExceeded, http.StatusUnprocessableEntity},
		{service.ErrLicenseExpired, http.StatusUnprocessableEntity},
		{service.ErrOdometerRegression, http.StatusUnprocessableEntity},
		{service.ErrTripVehicleMismatch, http.StatusUnprocessableEntity},

		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrExpiredToken, http.StatusUnauthorized},
		{auth.ErrUserInactive, http.StatusForbidden},

		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
			t.Errorf("mapErrorToHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
