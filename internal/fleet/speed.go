package fleet

import (
	"fleetpulse/pkg/contracts/domain"
)

// SpeedAnomaly is a trip whose effective speed fell below the anomaly
// threshold, suggesting it was delayed or stuck.
type SpeedAnomaly struct {
	TripID              string  `json:"trip_id"`
	VehicleID           string  `json:"vehicle_id"`
	DistanceKM          float64 `json:"distance_km"`
	DurationHrs         float64 `json:"duration_hrs"`
	ExpectedDurationHrs float64 `json:"expected_duration_hrs"`
	SpeedKMH            float64 `json:"speed_kmh"`
}

// SpeedAnomalyResult reports trips slower than ThresholdKMH.
type SpeedAnomalyResult struct {
	AssumedAvgSpeedKMH float64        `json:"assumed_avg_speed_kmh"`
	ThresholdKMH       float64        `json:"threshold_kmh"`
	Trips              []SpeedAnomaly `json:"trips"`
}

// SpeedAnomalies compares each trip's effective speed against the slow-trip
// threshold. Expected duration is distance over the assumed fleet average
// speed. Speed is undefined when duration is missing or zero; such trips
// are excluded rather than reported, since comparing a missing value is
// always false. Negative durations produce negative speeds and are
// reported like any other below-threshold trip.
func SpeedAnomalies(trips []domain.Trip, assumedAvgSpeedKMH, thresholdKMH float64) SpeedAnomalyResult {
	result := SpeedAnomalyResult{
		AssumedAvgSpeedKMH: assumedAvgSpeedKMH,
		ThresholdKMH:       thresholdKMH,
	}
	for _, t := range trips {
		if t.DurationHrs == nil {
			continue
		}
		speed := RatioOrNil(t.DistanceKM, *t.DurationHrs)
		if speed == nil || *speed >= thresholdKMH {
			continue
		}
		result.Trips = append(result.Trips, SpeedAnomaly{
			TripID:              t.TripID,
			VehicleID:           t.VehicleID,
			DistanceKM:          t.DistanceKM,
			DurationHrs:         *t.DurationHrs,
			ExpectedDurationHrs: t.DistanceKM / assumedAvgSpeedKMH,
			SpeedKMH:            *speed,
		})
	}
	return result
}
