package fleet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetpulse/pkg/contracts/domain"
)

func TestPreprocessDerivesTripDateTime(t *testing.T) {
	trips := []domain.Trip{{
		TripID:    "T1",
		TripDate:  datePtr(2024, time.March, 5),
		StartTime: timePtr(1899, time.December, 31, 8, 30),
	}}

	out := Preprocess(trips, false)

	require.NotNil(t, out[0].TripDateTime)
	assert.Equal(t, time.Date(2024, time.March, 5, 8, 30, 0, 0, time.UTC), *out[0].TripDateTime)
}

func TestPreprocessNilInputsStayNil(t *testing.T) {
	tests := []struct {
		name string
		trip domain.Trip
	}{
		{name: "no date", trip: domain.Trip{StartTime: timePtr(2024, time.March, 5, 8, 0)}},
		{name: "no start time", trip: domain.Trip{TripDate: datePtr(2024, time.March, 5)}},
		{name: "nothing", trip: domain.Trip{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Preprocess([]domain.Trip{tt.trip}, false)
			assert.Nil(t, out[0].TripDateTime)
			assert.Nil(t, out[0].DurationHrs)
		})
	}
}

func TestPreprocessDurationExactHours(t *testing.T) {
	trips := []domain.Trip{{
		TripDate:  datePtr(2024, time.March, 5),
		StartTime: timePtr(2024, time.March, 5, 8, 0),
		EndTime:   timePtr(2024, time.March, 5, 10, 30),
	}}

	out := Preprocess(trips, false)

	require.NotNil(t, out[0].DurationHrs)
	assert.InDelta(t, 2.5, *out[0].DurationHrs, 1e-9)
}

func TestPreprocessNegativeDurationPreserved(t *testing.T) {
	trips := []domain.Trip{{
		TripDate:  datePtr(2024, time.March, 5),
		StartTime: timePtr(2024, time.March, 5, 10, 0),
		EndTime:   timePtr(2024, time.March, 5, 8, 0),
	}}

	out := Preprocess(trips, false)
	require.NotNil(t, out[0].DurationHrs)
	assert.InDelta(t, -2.0, *out[0].DurationHrs, 1e-9)

	clamped := Preprocess(trips, true)
	require.NotNil(t, clamped[0].DurationHrs)
	assert.Zero(t, *clamped[0].DurationHrs)
}
