package fleet

import (
	"sort"

	"fleetpulse/pkg/contracts/domain"
)

// DriverStats aggregates one driver's trips.
type DriverStats struct {
	DriverID  string  `json:"driver_id"`
	TripCount int     `json:"trip_count"`
	DutyHours float64 `json:"duty_hours"`
}

// DriverTripCountsResult holds the top and bottom driver leaderboards. With
// fewer drivers than the leaderboard size, both lists contain all of them.
type DriverTripCountsResult struct {
	Top    []DriverStats `json:"top"`
	Bottom []DriverStats `json:"bottom"`
}

// DriverTripCounts groups trips by driver, counting trips and summing
// duration into duty hours (missing durations contribute nothing to the
// sum). Sorts are stable with ties broken by the driver's first appearance
// in the source rows.
func DriverTripCounts(trips []domain.Trip, leaderboardSize int) DriverTripCountsResult {
	byDriver := make(map[string]*DriverStats)
	order := make([]string, 0)
	for _, t := range trips {
		s, ok := byDriver[t.DriverID]
		if !ok {
			s = &DriverStats{DriverID: t.DriverID}
			byDriver[t.DriverID] = s
			order = append(order, t.DriverID)
		}
		s.TripCount++
		if t.DurationHrs != nil {
			s.DutyHours += *t.DurationHrs
		}
	}

	stats := make([]DriverStats, 0, len(order))
	for _, id := range order {
		stats = append(stats, *byDriver[id])
	}

	top := make([]DriverStats, len(stats))
	copy(top, stats)
	sort.SliceStable(top, func(i, j int) bool { return top[i].TripCount > top[j].TripCount })

	bottom := make([]DriverStats, len(stats))
	copy(bottom, stats)
	sort.SliceStable(bottom, func(i, j int) bool { return bottom[i].TripCount < bottom[j].TripCount })

	if len(top) > leaderboardSize {
		top = top[:leaderboardSize]
	}
	if len(bottom) > leaderboardSize {
		bottom = bottom[:leaderboardSize]
	}
	return DriverTripCountsResult{Top: top, Bottom: bottom}
}
