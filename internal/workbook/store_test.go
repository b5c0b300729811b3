package workbook

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureBytes(t *testing.T) []byte {
	t.Helper()
	r := buildWorkbook(t, map[string][][]interface{}{
		"Trips": {
			{"Trip ID", "Vehicle ID", "Driver ID", "Trip Date", "Start Time", "End Time", "Distance (km)"},
			{"T1", "V1", "D1", "2024-03-05", "08:00:00", "10:00:00", "40"},
		},
	})
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return data
}

func TestStoreLoadRegistersWorkbook(t *testing.T) {
	store := NewStore(testLogger(), false)
	data := fixtureBytes(t)

	entry, err := store.Load(context.Background(), "fleet.xlsx", data)
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "fleet.xlsx", entry.Filename)
	require.True(t, entry.Workbook.HasTrips())

	// The store runs the preprocessor: derived fields are populated.
	trip := entry.Workbook.Trips[0]
	require.NotNil(t, trip.TripDateTime)
	require.NotNil(t, trip.DurationHrs)
	assert.InDelta(t, 2.0, *trip.DurationHrs, 1e-9)

	got, ok := store.Get(entry.ID)
	require.True(t, ok)
	assert.Same(t, entry, got)
}

func TestStoreMemoizesIdenticalBytes(t *testing.T) {
	store := NewStore(testLogger(), false)
	data := fixtureBytes(t)

	first, err := store.Load(context.Background(), "a.xlsx", data)
	require.NoError(t, err)
	second, err := store.Load(context.Background(), "b.xlsx", data)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.Len())
}

func TestStoreDistinctBytesGetDistinctIDs(t *testing.T) {
	store := NewStore(testLogger(), false)

	other := buildWorkbook(t, map[string][][]interface{}{
		"Vehicles": {
			{"Vehicle ID", "Status"},
			{"V9", "Available"},
		},
	})
	otherData, err := io.ReadAll(other)
	require.NoError(t, err)

	first, err := store.Load(context.Background(), "a.xlsx", fixtureBytes(t))
	require.NoError(t, err)
	second, err := store.Load(context.Background(), "b.xlsx", otherData)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, store.Len())
}

func TestStoreLoadRejectsCorruptFile(t *testing.T) {
	store := NewStore(testLogger(), false)

	_, err := store.Load(context.Background(), "bad.xlsx", []byte("nope"))
	assert.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestStoreGetUnknownID(t *testing.T) {
	store := NewStore(testLogger(), false)
	_, ok := store.Get("missing")
	assert.False(t, ok)
}
