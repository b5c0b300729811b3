package fleet

import (
	"sort"
	"time"

	"fleetpulse/pkg/contracts/domain"
)

// Metric selects which quantity the 7-day underutilization filter compares
// against its threshold.
type Metric string

const (
	MetricTripCount Metric = "trips"
	MetricDistance  Metric = "distance"
)

// Valid reports whether m is one of the supported metrics.
func (m Metric) Valid() bool {
	return m == MetricTripCount || m == MetricDistance
}

// Classification labels a vehicle in the long-term utilization report.
type Classification string

const (
	ClassTooNew        Classification = "Too New"
	ClassUnderutilized Classification = "Underutilized"
	ClassUtilized      Classification = "Utilized"
)

// RecentVehicleUsage aggregates one vehicle's activity inside the recent
// window.
type RecentVehicleUsage struct {
	VehicleID  string  `json:"vehicle_id"`
	Trips      int     `json:"trips"`
	DistanceKM float64 `json:"distance_km"`
}

// RecentUnderutilizedResult is the 7-day window sub-analysis output.
type RecentUnderutilizedResult struct {
	Cutoff    time.Time            `json:"cutoff"`
	Metric    Metric               `json:"metric"`
	Threshold float64              `json:"threshold"`
	Vehicles  []RecentVehicleUsage `json:"vehicles"`
}

// VehicleUtilization is one vehicle's row in the long-term report.
type VehicleUtilization struct {
	VehicleID       string         `json:"vehicle_id"`
	TotalTrips      int            `json:"total_trips"`
	TotalDistanceKM float64        `json:"total_distance_km"`
	FirstTripDate   time.Time      `json:"first_trip_date"`
	LastTripDate    time.Time      `json:"last_trip_date"`
	DaysActive      int            `json:"days_active"`
	AvgTripsPerWeek float64        `json:"avg_trips_per_week"`
	Classification  Classification `json:"classification"`
}

// Histogram carries the trip-count distribution chart data: fixed-width
// bins over total trips per vehicle plus the fleet-mean marker.
type Histogram struct {
	Bins []HistogramBin `json:"bins"`
	Mean float64        `json:"mean"`
}

// HistogramBin is a half-open [Lower, Upper) bucket; the last bin is
// closed on both ends.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// LongTermUnderutilizedResult is the long-term window sub-analysis output.
// FleetAvgTripsPerWeek is nil when no vehicle has been active for the full
// maturity window; every row is then "Too New" and InsufficientData is set
// instead of letting an undefined mean leak into the classification.
type LongTermUnderutilizedResult struct {
	Vehicles             []VehicleUtilization `json:"vehicles"`
	FleetAvgTripsPerWeek *float64             `json:"fleet_avg_trips_per_week,omitempty"`
	InsufficientData     bool                 `json:"insufficient_data,omitempty"`
	Histogram            Histogram            `json:"histogram"`
}

// UnderutilizedResult bundles both sub-analyses, run together.
type UnderutilizedResult struct {
	Recent   RecentUnderutilizedResult   `json:"recent"`
	LongTerm LongTermUnderutilizedResult `json:"long_term"`
}

// UnderutilizedParams configures the underutilization analysis.
type UnderutilizedParams struct {
	Metric             Metric
	Threshold          float64
	RecentWindowDays   int
	MaturityWindowDays int
	HistogramBins      int
}

// Underutilized runs the 7-day and long-term utilization sub-analyses over
// the preprocessed trips. Trips with a missing TripDate never satisfy the
// window filter and contribute nothing to either aggregation.
func Underutilized(trips []domain.Trip, now time.Time, p UnderutilizedParams) UnderutilizedResult {
	if p.HistogramBins <= 0 {
		p.HistogramBins = 20
	}
	return UnderutilizedResult{
		Recent:   recentUnderutilized(trips, now, p),
		LongTerm: longTermUnderutilized(trips, p),
	}
}

func recentUnderutilized(trips []domain.Trip, now time.Time, p UnderutilizedParams) RecentUnderutilizedResult {
	cutoff := now.AddDate(0, 0, -p.RecentWindowDays)

	usage := make(map[string]*RecentVehicleUsage)
	for _, t := range trips {
		// Inclusive boundary: a trip dated exactly on the cutoff counts.
		if t.TripDate == nil || t.TripDate.Before(cutoff) {
			continue
		}
		u, ok := usage[t.VehicleID]
		if !ok {
			u = &RecentVehicleUsage{VehicleID: t.VehicleID}
			usage[t.VehicleID] = u
		}
		u.Trips++
		u.DistanceKM += t.DistanceKM
	}

	result := RecentUnderutilizedResult{
		Cutoff:    cutoff,
		Metric:    p.Metric,
		Threshold: p.Threshold,
	}
	for _, u := range usage {
		var value float64
		switch p.Metric {
		case MetricDistance:
			value = u.DistanceKM
		default:
			value = float64(u.Trips)
		}
		if value < p.Threshold {
			result.Vehicles = append(result.Vehicles, *u)
		}
	}
	sort.Slice(result.Vehicles, func(i, j int) bool {
		return result.Vehicles[i].VehicleID < result.Vehicles[j].VehicleID
	})
	return result
}

func longTermUnderutilized(trips []domain.Trip, p UnderutilizedParams) LongTermUnderutilizedResult {
	type agg struct {
		trips    int
		distance float64
		first    time.Time
		last     time.Time
	}
	byVehicle := make(map[string]*agg)
	for _, t := range trips {
		if t.TripDate == nil {
			continue
		}
		a, ok := byVehicle[t.VehicleID]
		if !ok {
			a = &agg{first: *t.TripDate, last: *t.TripDate}
			byVehicle[t.VehicleID] = a
		}
		a.trips++
		a.distance += t.DistanceKM
		if t.TripDate.Before(a.first) {
			a.first = *t.TripDate
		}
		if t.TripDate.After(a.last) {
			a.last = *t.TripDate
		}
	}

	vehicles := make([]VehicleUtilization, 0, len(byVehicle))
	for id, a := range byVehicle {
		daysActive := int(a.last.Sub(a.first).Hours()/24) + 1
		vehicles = append(vehicles, VehicleUtilization{
			VehicleID:       id,
			TotalTrips:      a.trips,
			TotalDistanceKM: a.distance,
			FirstTripDate:   a.first,
			LastTripDate:    a.last,
			DaysActive:      daysActive,
			AvgTripsPerWeek: float64(a.trips) / (float64(daysActive) / 7),
		})
	}
	sort.Slice(vehicles, func(i, j int) bool {
		return vehicles[i].VehicleID < vehicles[j].VehicleID
	})

	// Fleet average over mature vehicles only; vehicles younger than the
	// maturity window are excluded from the mean but still reported.
	var matureSum float64
	var matureCount int
	for _, v := range vehicles {
		if v.DaysActive >= p.MaturityWindowDays {
			matureSum += v.AvgTripsPerWeek
			matureCount++
		}
	}

	result := LongTermUnderutilizedResult{Vehicles: vehicles}
	if matureCount == 0 {
		result.InsufficientData = true
		for i := range result.Vehicles {
			result.Vehicles[i].Classification = ClassTooNew
		}
	} else {
		fleetAvg := matureSum / float64(matureCount)
		result.FleetAvgTripsPerWeek = &fleetAvg
		for i, v := range result.Vehicles {
			switch {
			case v.DaysActive < p.MaturityWindowDays:
				result.Vehicles[i].Classification = ClassTooNew
			case v.AvgTripsPerWeek < fleetAvg:
				result.Vehicles[i].Classification = ClassUnderutilized
			default:
				result.Vehicles[i].Classification = ClassUtilized
			}
		}
	}

	result.Histogram = tripCountHistogram(vehicles, p.HistogramBins)
	return result
}

// tripCountHistogram bins total trips per vehicle. The mean marker is the
// mean over ALL vehicles, matching the chart the analysis always rendered,
// not the maturity-filtered fleet average.
func tripCountHistogram(vehicles []VehicleUtilization, bins int) Histogram {
	if len(vehicles) == 0 {
		return Histogram{Bins: []HistogramBin{}}
	}

	min := float64(vehicles[0].TotalTrips)
	max := min
	var sum float64
	for _, v := range vehicles {
		n := float64(v.TotalTrips)
		sum += n
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}

	h := Histogram{Mean: sum / float64(len(vehicles))}
	if min == max {
		h.Bins = []HistogramBin{{Lower: min, Upper: max, Count: len(vehicles)}}
		return h
	}

	width := (max - min) / float64(bins)
	h.Bins = make([]HistogramBin, bins)
	for i := range h.Bins {
		h.Bins[i] = HistogramBin{
			Lower: min + float64(i)*width,
			Upper: min + float64(i+1)*width,
		}
	}
	for _, v := range vehicles {
		idx := int((float64(v.TotalTrips) - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		h.Bins[idx].Count++
	}
	return h
}
