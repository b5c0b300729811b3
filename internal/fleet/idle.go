package fleet

import (
	"sort"
	"time"

	"fleetpulse/pkg/contracts/domain"
)

// IdleTrip is a trip whose gap since the vehicle's previous trip exceeded
// the idle threshold.
type IdleTrip struct {
	VehicleID    string    `json:"vehicle_id"`
	TripID       string    `json:"trip_id"`
	IdleHours    float64   `json:"idle_hours"`
	TripDateTime time.Time `json:"trip_datetime"`
}

// HighIdleResult reports the trips that started after an idle gap longer
// than ThresholdHours.
type HighIdleResult struct {
	ThresholdHours float64    `json:"threshold_hours"`
	Trips          []IdleTrip `json:"trips"`
}

// HighIdle sorts trips by (vehicle, trip date-time) and computes, within
// each vehicle, the gap between consecutive trip start times. The first
// trip of a vehicle has no idle time and is never reported. Trips with a
// missing TripDateTime cannot anchor a gap and are dropped before the diff.
func HighIdle(trips []domain.Trip, thresholdHours float64) HighIdleResult {
	dated := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		if t.TripDateTime != nil {
			dated = append(dated, t)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		if dated[i].VehicleID != dated[j].VehicleID {
			return dated[i].VehicleID < dated[j].VehicleID
		}
		return dated[i].TripDateTime.Before(*dated[j].TripDateTime)
	})

	result := HighIdleResult{ThresholdHours: thresholdHours}
	for i := 1; i < len(dated); i++ {
		prev, cur := dated[i-1], dated[i]
		if prev.VehicleID != cur.VehicleID {
			continue
		}
		idle := cur.TripDateTime.Sub(*prev.TripDateTime).Hours()
		if idle > thresholdHours {
			result.Trips = append(result.Trips, IdleTrip{
				VehicleID:    cur.VehicleID,
				TripID:       cur.TripID,
				IdleHours:    idle,
				TripDateTime: *cur.TripDateTime,
			})
		}
	}
	return result
}
