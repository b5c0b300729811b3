package fleet

import (
	"strings"

	"fleetpulse/pkg/contracts/domain"
)

// VehicleTripCount is one row of the vehicles-to-trips left join.
type VehicleTripCount struct {
	VehicleID string `json:"vehicle_id"`
	Status    string `json:"status"`
	TripCount int    `json:"trip_count"`
}

// AllocationResult summarizes the allocated-vs-available partition of the
// vehicle fleet.
type AllocationResult struct {
	AllocatedCount int     `json:"allocated_count"`
	AvailableCount int     `json:"available_count"`
	RatioPercent   float64 `json:"ratio_percent"`
	Vehicles       []VehicleTripCount `json:"vehicles"`
}

// Allocation partitions vehicles by status (case-insensitive; statuses
// other than "allocated"/"available" fall in neither bucket) and left-joins
// per-vehicle trip counts. Vehicles without trips get a count of zero;
// trips referencing unknown vehicles are ignored by the join. The ratio is
// allocated/max(available,1)*100, the denominator substituted with 1
// rather than skipping the computation.
func Allocation(vehicles []domain.Vehicle, trips []domain.Trip) AllocationResult {
	tripCounts := make(map[string]int, len(vehicles))
	for _, t := range trips {
		tripCounts[t.VehicleID]++
	}

	result := AllocationResult{
		Vehicles: make([]VehicleTripCount, 0, len(vehicles)),
	}
	for _, v := range vehicles {
		switch strings.ToLower(v.Status) {
		case "allocated":
			result.AllocatedCount++
		case "available":
			result.AvailableCount++
		}
		result.Vehicles = append(result.Vehicles, VehicleTripCount{
			VehicleID: v.VehicleID,
			Status:    v.Status,
			TripCount: tripCounts[v.VehicleID],
		})
	}

	result.RatioPercent = RatioFloorOne(float64(result.AllocatedCount), float64(result.AvailableCount)) * 100
	return result
}
