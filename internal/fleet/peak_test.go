package fleet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetpulse/pkg/contracts/domain"
)

func TestPeakUsageDayOrderMondayFirstWithWeekendOnlyData(t *testing.T) {
	// 2024-03-02 is a Saturday, 2024-03-03 a Sunday.
	trips := []domain.Trip{
		{TripDateTime: timePtr(2024, time.March, 2, 10, 0)},
		{TripDateTime: timePtr(2024, time.March, 3, 11, 0)},
		{TripDateTime: timePtr(2024, time.March, 3, 12, 0)},
	}

	result := PeakUsage(trips)

	require.Len(t, result.ByDay, 7)
	wantOrder := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, d := range result.ByDay {
		assert.Equal(t, wantOrder[i], d.Day)
	}
	assert.Equal(t, 1, result.ByDay[5].Trips)
	assert.Equal(t, 2, result.ByDay[6].Trips)
	assert.Equal(t, 0, result.ByDay[0].Trips)
}

func TestPeakUsageHourDistributionDense(t *testing.T) {
	trips := []domain.Trip{
		{TripDateTime: timePtr(2024, time.March, 4, 9, 15)},
		{TripDateTime: timePtr(2024, time.March, 5, 9, 45)},
		{TripDateTime: timePtr(2024, time.March, 6, 17, 0)},
	}

	result := PeakUsage(trips)

	require.Len(t, result.ByHour, 24)
	assert.Equal(t, 9, result.ByHour[9].Hour)
	assert.Equal(t, 2, result.ByHour[9].Trips)
	assert.Equal(t, 1, result.ByHour[17].Trips)
	assert.Equal(t, 0, result.ByHour[0].Trips)
}

func TestPeakUsageSkipsUndatedTrips(t *testing.T) {
	trips := []domain.Trip{
		{TripDateTime: nil},
		{TripDateTime: timePtr(2024, time.March, 4, 9, 0)},
	}

	result := PeakUsage(trips)

	total := 0
	for _, h := range result.ByHour {
		total += h.Trips
	}
	assert.Equal(t, 1, total)
}
