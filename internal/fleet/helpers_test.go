package fleet

import (
	"time"

	"fleetpulse/pkg/contracts/domain"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func timePtr(y int, m time.Month, d, hh, mm int) *time.Time {
	t := time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
	return &t
}

func floatPtr(v float64) *float64 {
	return &v
}

// tripOn builds a minimal dated trip for window and aggregation tests.
func tripOn(vehicleID string, date *time.Time, distance float64) domain.Trip {
	return domain.Trip{
		VehicleID:  vehicleID,
		TripDate:   date,
		DistanceKM: distance,
	}
}
