package fleet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetpulse/pkg/contracts/domain"
)

func TestAllocationRatioZeroAvailable(t *testing.T) {
	// N allocated and zero available must yield N*100, never a division
	// error or a skipped row.
	vehicles := []domain.Vehicle{
		{VehicleID: "V1", Status: "Allocated"},
		{VehicleID: "V2", Status: "Allocated"},
		{VehicleID: "V3", Status: "Allocated"},
	}

	result := Allocation(vehicles, nil)

	assert.Equal(t, 3, result.AllocatedCount)
	assert.Equal(t, 0, result.AvailableCount)
	assert.InDelta(t, 300.0, result.RatioPercent, 1e-9)
}

func TestAllocationStatusCaseInsensitive(t *testing.T) {
	vehicles := []domain.Vehicle{
		{VehicleID: "V1", Status: "ALLOCATED"},
		{VehicleID: "V2", Status: "available"},
		{VehicleID: "V3", Status: "Available"},
		{VehicleID: "V4", Status: "maintenance"},
	}

	result := Allocation(vehicles, nil)

	assert.Equal(t, 1, result.AllocatedCount)
	assert.Equal(t, 2, result.AvailableCount)
	// The maintenance vehicle counts in neither bucket but stays listed.
	assert.Len(t, result.Vehicles, 4)
	assert.InDelta(t, 50.0, result.RatioPercent, 1e-9)
}

func TestAllocationLeftJoinTripCounts(t *testing.T) {
	vehicles := []domain.Vehicle{
		{VehicleID: "V1", Status: "allocated"},
		{VehicleID: "V2", Status: "available"},
	}
	day := datePtr(2024, time.March, 1)
	trips := []domain.Trip{
		tripOn("V1", day, 10),
		tripOn("V1", day, 10),
		tripOn("GHOST", day, 10), // unknown vehicle, ignored by the join
	}

	result := Allocation(vehicles, trips)

	require.Len(t, result.Vehicles, 2)
	assert.Equal(t, "V1", result.Vehicles[0].VehicleID)
	assert.Equal(t, 2, result.Vehicles[0].TripCount)
	assert.Equal(t, "V2", result.Vehicles[1].VehicleID)
	assert.Equal(t, 0, result.Vehicles[1].TripCount)
}
