package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fleetpulse/internal/config"
	"fleetpulse/internal/fleet"
	"fleetpulse/internal/infrastructure"
	"fleetpulse/internal/workbook"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestService loads one workbook built from the given sheets and
// returns the service plus the workbook ID, with the clock pinned.
func newTestService(t *testing.T, sheets map[string][][]interface{}, now time.Time) (*AnalysisService, string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	store := workbook.NewStore(testLogger(), false)
	metrics, err := infrastructure.CreateBusinessMetrics(nil)
	require.NoError(t, err)
	svc := NewAnalysisService(store, config.Default().Analysis, testLogger(), metrics).
		WithClock(func() time.Time { return now })

	entry, err := svc.LoadWorkbook(context.Background(), "fixture.xlsx", buf.Bytes())
	require.NoError(t, err)
	return svc, entry.ID
}

func tripsSheet(rows ...[]interface{}) [][]interface{} {
	header := []interface{}{"Trip ID", "Vehicle ID", "Driver ID", "Trip Date", "Start Time", "End Time", "Distance (km)"}
	return append([][]interface{}{header}, rows...)
}

func TestUnderutilizedUsesDefaults(t *testing.T) {
	now := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	svc, id := newTestService(t, map[string][][]interface{}{
		"Trips": tripsSheet(
			[]interface{}{"T1", "V1", "D1", "2024-01-10", "08:00:00", "09:00:00", "20"},
		),
	}, now)

	result, err := svc.Underutilized(context.Background(), id, UnderutilizedRequest{})
	require.NoError(t, err)

	assert.Equal(t, fleet.MetricTripCount, result.Recent.Metric)
	assert.InDelta(t, config.DefaultTripCountThreshold, result.Recent.Threshold, 1e-9)
	require.Len(t, result.Recent.Vehicles, 1)
	assert.Equal(t, "V1", result.Recent.Vehicles[0].VehicleID)
}

func TestUnderutilizedDistanceDefaultThreshold(t *testing.T) {
	now := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	svc, id := newTestService(t, map[string][][]interface{}{
		"Trips": tripsSheet(
			[]interface{}{"T1", "V1", "D1", "2024-01-10", "08:00:00", "09:00:00", "20"},
		),
	}, now)

	result, err := svc.Underutilized(context.Background(), id, UnderutilizedRequest{Metric: "distance"})
	require.NoError(t, err)
	assert.InDelta(t, config.DefaultDistanceThresholdKM, result.Recent.Threshold, 1e-9)
}

func TestUnderutilizedRejectsBadMetric(t *testing.T) {
	now := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	svc, id := newTestService(t, map[string][][]interface{}{
		"Trips": tripsSheet(),
	}, now)

	_, err := svc.Underutilized(context.Background(), id, UnderutilizedRequest{Metric: "fuel"})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestWorkbookNotFound(t *testing.T) {
	now := time.Now()
	svc, _ := newTestService(t, map[string][][]interface{}{
		"Trips": tripsSheet(),
	}, now)

	_, err := svc.PeakUsage(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrWorkbookNotFound)
}

func TestTripsSheetMissing(t *testing.T) {
	now := time.Now()
	svc, id := newTestService(t, map[string][][]interface{}{
		"Vehicles": {
			{"Vehicle ID", "Status"},
			{"V1", "Allocated"},
		},
	}, now)

	_, err := svc.HighIdle(context.Background(), id)
	assert.ErrorIs(t, err, ErrTripsSheetMissing)
}

func TestAllocationRequiresVehiclesSheet(t *testing.T) {
	now := time.Now()
	svc, id := newTestService(t, map[string][][]interface{}{
		"Trips": tripsSheet(
			[]interface{}{"T1", "V1", "D1", "2024-01-10", "08:00:00", "09:00:00", "20"},
		),
	}, now)

	_, err := svc.Allocation(context.Background(), id)
	assert.ErrorIs(t, err, ErrVehiclesSheetMissing)
}

func TestAllocationJoinsSheets(t *testing.T) {
	now := time.Now()
	svc, id := newTestService(t, map[string][][]interface{}{
		"Trips": tripsSheet(
			[]interface{}{"T1", "V1", "D1", "2024-01-10", "08:00:00", "09:00:00", "20"},
			[]interface{}{"T2", "V1", "D1", "2024-01-11", "08:00:00", "09:00:00", "20"},
		),
		"Vehicles": {
			{"Vehicle ID", "Status"},
			{"V1", "Allocated"},
			{"V2", "Available"},
		},
	}, now)

	result, err := svc.Allocation(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 1, result.AllocatedCount)
	assert.Equal(t, 1, result.AvailableCount)
	require.Len(t, result.Vehicles, 2)
	assert.Equal(t, 2, result.Vehicles[0].TripCount)
	assert.Equal(t, 0, result.Vehicles[1].TripCount)
}

func TestSpeedAnomaliesEndToEnd(t *testing.T) {
	now := time.Now()
	svc, id := newTestService(t, map[string][][]interface{}{
		"Trips": tripsSheet(
			// 5 km in 1 hour: 5 km/h, below the 10 km/h default.
			[]interface{}{"T1", "V1", "D1", "2024-01-10", "08:00:00", "09:00:00", "5"},
			// 60 km in 1 hour: fine.
			[]interface{}{"T2", "V1", "D1", "2024-01-10", "10:00:00", "11:00:00", "60"},
		),
	}, now)

	result, err := svc.SpeedAnomalies(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, result.Trips, 1)
	assert.Equal(t, "T1", result.Trips[0].TripID)
	assert.InDelta(t, 5.0, result.Trips[0].SpeedKMH, 1e-9)
	assert.InDelta(t, 5.0/config.DefaultAssumedAvgSpeedKMH, result.Trips[0].ExpectedDurationHrs, 1e-9)
}

func TestHighIdleEndToEnd(t *testing.T) {
	now := time.Now()
	svc, id := newTestService(t, map[string][][]interface{}{
		"Trips": tripsSheet(
			[]interface{}{"T1", "V1", "D1", "2024-01-10", "08:00:00", "09:00:00", "20"},
			// Next trip starts 7 hours after the previous start.
			[]interface{}{"T2", "V1", "D1", "2024-01-10", "15:00:00", "16:00:00", "20"},
		),
	}, now)

	result, err := svc.HighIdle(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, result.Trips, 1)
	assert.Equal(t, "T2", result.Trips[0].TripID)
	assert.InDelta(t, 7.0, result.Trips[0].IdleHours, 1e-9)
}

func TestDriverTripCountsEndToEnd(t *testing.T) {
	now := time.Now()
	svc, id := newTestService(t, map[string][][]interface{}{
		"Trips": tripsSheet(
			[]interface{}{"T1", "V1", "D1", "2024-01-10", "08:00:00", "09:00:00", "20"},
			[]interface{}{"T2", "V1", "D1", "2024-01-11", "08:00:00", "09:30:00", "20"},
			[]interface{}{"T3", "V1", "D2", "2024-01-11", "08:00:00", "09:00:00", "20"},
		),
	}, now)

	result, err := svc.DriverTripCounts(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, result.Top, 2)
	assert.Equal(t, "D1", result.Top[0].DriverID)
	assert.Equal(t, 2, result.Top[0].TripCount)
	assert.InDelta(t, 2.5, result.Top[0].DutyHours, 1e-9)
	assert.Equal(t, "D2", result.Bottom[0].DriverID)
}
