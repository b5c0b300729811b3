package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetpulse/internal/config"
	apierrors "fleetpulse/internal/errors"
	"fleetpulse/internal/fleet"
	"fleetpulse/internal/services"
	"fleetpulse/internal/workbook"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeService returns canned results or a fixed error.
type fakeService struct {
	err           error
	entry         *workbook.Entry
	underutilized *fleet.UnderutilizedResult
	allocation    *fleet.AllocationResult
	idle          *fleet.HighIdleResult
	peak          *fleet.PeakUsageResult
	drivers       *fleet.DriverTripCountsResult
	speed         *fleet.SpeedAnomalyResult

	gotRequest services.UnderutilizedRequest
}

func (f *fakeService) LoadWorkbook(ctx context.Context, filename string, data []byte) (*workbook.Entry, error) {
	return f.entry, f.err
}

func (f *fakeService) GetWorkbook(ctx context.Context, id string) (*workbook.Entry, error) {
	return f.entry, f.err
}

func (f *fakeService) Underutilized(ctx context.Context, id string, req services.UnderutilizedRequest) (*fleet.UnderutilizedResult, error) {
	f.gotRequest = req
	return f.underutilized, f.err
}

func (f *fakeService) Allocation(ctx context.Context, id string) (*fleet.AllocationResult, error) {
	return f.allocation, f.err
}

func (f *fakeService) HighIdle(ctx context.Context, id string) (*fleet.HighIdleResult, error) {
	return f.idle, f.err
}

func (f *fakeService) PeakUsage(ctx context.Context, id string) (*fleet.PeakUsageResult, error) {
	return f.peak, f.err
}

func (f *fakeService) DriverTripCounts(ctx context.Context, id string) (*fleet.DriverTripCountsResult, error) {
	return f.drivers, f.err
}

func (f *fakeService) SpeedAnomalies(ctx context.Context, id string) (*fleet.SpeedAnomalyResult, error) {
	return f.speed, f.err
}

func newTestRouter(svc AnalysisService) chi.Router {
	errorHandler := apierrors.NewErrorHandler(testLogger(), false)
	handler := NewAnalysisHandler(svc, errorHandler, testLogger())

	r := chi.NewRouter()
	r.Mount("/api/workbooks/{workbookID}/analyses", handler.Routes())
	return r
}

func get(t *testing.T, router chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAllocationJSON(t *testing.T) {
	svc := &fakeService{allocation: &fleet.AllocationResult{
		AllocatedCount: 2,
		AvailableCount: 1,
		RatioPercent:   200,
	}}

	rec := get(t, newTestRouter(svc), "/api/workbooks/wb1/analyses/allocation")

	require.Equal(t, http.StatusOK, rec.Code)
	var body fleet.AllocationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.AllocatedCount)
	assert.InDelta(t, 200.0, body.RatioPercent, 1e-9)
}

func TestAllocationCSVFixedFilename(t *testing.T) {
	svc := &fakeService{allocation: &fleet.AllocationResult{}}

	rec := get(t, newTestRouter(svc), "/api/workbooks/wb1/analyses/allocation?format=csv")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t,
		fmt.Sprintf("attachment; filename=%q", config.CSVAllocation),
		rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\xEF\xBB\xBF"))
}

func TestUnderutilizedPassesQueryParams(t *testing.T) {
	svc := &fakeService{underutilized: &fleet.UnderutilizedResult{}}

	rec := get(t, newTestRouter(svc), "/api/workbooks/wb1/analyses/underutilized?metric=distance&threshold=50")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "distance", svc.gotRequest.Metric)
	require.NotNil(t, svc.gotRequest.Threshold)
	assert.InDelta(t, 50.0, *svc.gotRequest.Threshold, 1e-9)
}

func TestUnderutilizedBadThreshold(t *testing.T) {
	svc := &fakeService{underutilized: &fleet.UnderutilizedResult{}}

	rec := get(t, newTestRouter(svc), "/api/workbooks/wb1/analyses/underutilized?threshold=abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnderutilizedCSVWindowSelection(t *testing.T) {
	svc := &fakeService{underutilized: &fleet.UnderutilizedResult{}}
	router := newTestRouter(svc)

	recent := get(t, router, "/api/workbooks/wb1/analyses/underutilized?format=csv")
	assert.Contains(t, recent.Header().Get("Content-Disposition"), config.CSVUnderutilized7Days)

	longterm := get(t, router, "/api/workbooks/wb1/analyses/underutilized?format=csv&window=longterm")
	assert.Contains(t, longterm.Header().Get("Content-Disposition"), config.CSVUnderutilizedLongTerm)
}

func TestWorkbookNotFoundMapsTo404(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("workbook %q: %w", "wb1", services.ErrWorkbookNotFound)}

	rec := get(t, newTestRouter(svc), "/api/workbooks/wb1/analyses/peak-usage")

	require.Equal(t, http.StatusNotFound, rec.Code)
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "/errors/workbook/not-found", problem["type"])
}

func TestMissingSheetMapsTo422(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		path  string
		sheet string
	}{
		{
			name:  "trips sheet",
			err:   services.ErrTripsSheetMissing,
			path:  "/api/workbooks/wb1/analyses/idle-time",
			sheet: "Trips",
		},
		{
			name:  "vehicles sheet",
			err:   services.ErrVehiclesSheetMissing,
			path:  "/api/workbooks/wb1/analyses/allocation",
			sheet: "Vehicles",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := get(t, newTestRouter(svc), tt.path)

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.sheet)
		})
	}
}

func TestInvalidParamsMapTo400(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: bad metric", services.ErrInvalidParams)}

	rec := get(t, newTestRouter(svc), "/api/workbooks/wb1/analyses/underutilized")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDriverTripsJSON(t *testing.T) {
	svc := &fakeService{drivers: &fleet.DriverTripCountsResult{
		Top: []fleet.DriverStats{{DriverID: "D1", TripCount: 5}},
	}}

	rec := get(t, newTestRouter(svc), "/api/workbooks/wb1/analyses/driver-trips")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "D1")
}

func TestSpeedAnomaliesCSV(t *testing.T) {
	svc := &fakeService{speed: &fleet.SpeedAnomalyResult{
		Trips: []fleet.SpeedAnomaly{{TripID: "T1", VehicleID: "V1", SpeedKMH: 4}},
	}}

	rec := get(t, newTestRouter(svc), "/api/workbooks/wb1/analyses/speed-anomalies?format=csv")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), config.CSVSpeedAnomalies)
	assert.Contains(t, rec.Body.String(), "T1")
}

func TestIdleTimeJSON(t *testing.T) {
	svc := &fakeService{idle: &fleet.HighIdleResult{ThresholdHours: 6}}

	rec := get(t, newTestRouter(svc), "/api/workbooks/wb1/analyses/idle-time")
	require.Equal(t, http.StatusOK, rec.Code)

	var body fleet.HighIdleResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, 6.0, body.ThresholdHours, 1e-9)
}
