package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"fleetpulse/internal/config"
	"fleetpulse/internal/fleet"
	"fleetpulse/internal/infrastructure"
	"fleetpulse/internal/workbook"
	"fleetpulse/pkg/contracts/domain"
)

// UnderutilizedRequest carries the caller-tunable knobs of the
// underutilization analysis. A nil Threshold selects the metric's default.
type UnderutilizedRequest struct {
	Metric    string   `json:"metric" validate:"omitempty,oneof=trips distance"`
	Threshold *float64 `json:"threshold" validate:"omitempty,gte=0"`
}

// AnalysisService runs the canned fleet analyses against workbooks held in
// the store. All analyses are pure over the stored data; the service adds
// lookup, validation, metrics, and logging.
type AnalysisService struct {
	store    *workbook.Store
	cfg      config.AnalysisConfig
	logger   *slog.Logger
	validate *validator.Validate
	metrics  *infrastructure.BusinessMetrics

	// now is injected so window cutoffs are testable.
	now func() time.Time
}

// NewAnalysisService creates an analysis service over the given store.
func NewAnalysisService(store *workbook.Store, cfg config.AnalysisConfig, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *AnalysisService {
	return &AnalysisService{
		store:    store,
		cfg:      cfg,
		logger:   logger.With(slog.String("service", "analysis")),
		validate: validator.New(),
		metrics:  metrics,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *AnalysisService) WithClock(now func() time.Time) *AnalysisService {
	s.now = now
	return s
}

// LoadWorkbook parses and registers an uploaded workbook.
func (s *AnalysisService) LoadWorkbook(ctx context.Context, filename string, data []byte) (*workbook.Entry, error) {
	entry, err := s.store.Load(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordWorkbookLoad(ctx)
	return entry, nil
}

// GetWorkbook returns the stored entry for an ID.
func (s *AnalysisService) GetWorkbook(ctx context.Context, id string) (*workbook.Entry, error) {
	entry, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("workbook %q: %w", id, ErrWorkbookNotFound)
	}
	return entry, nil
}

// trips resolves the workbook and checks the Trips sheet is present.
func (s *AnalysisService) trips(ctx context.Context, id string) ([]domain.Trip, error) {
	entry, err := s.GetWorkbook(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entry.Workbook.HasTrips() {
		return nil, fmt.Errorf("workbook %q: %w", id, ErrTripsSheetMissing)
	}
	return entry.Workbook.Trips, nil
}

// Underutilized runs the 7-day and long-term underutilization analysis.
func (s *AnalysisService) Underutilized(ctx context.Context, id string, req UnderutilizedRequest) (*fleet.UnderutilizedResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParams, err.Error())
	}

	trips, err := s.trips(ctx, id)
	if err != nil {
		return nil, err
	}

	metric := fleet.Metric(req.Metric)
	if metric == "" {
		metric = fleet.MetricTripCount
	}
	threshold := s.cfg.DefaultTripCountThreshold
	if metric == fleet.MetricDistance {
		threshold = s.cfg.DefaultDistanceThresholdKM
	}
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	result := fleet.Underutilized(trips, s.now(), fleet.UnderutilizedParams{
		Metric:             metric,
		Threshold:          threshold,
		RecentWindowDays:   s.cfg.RecentWindowDays,
		MaturityWindowDays: s.cfg.MaturityWindowDays,
		HistogramBins:      s.cfg.HistogramBins,
	})

	s.metrics.RecordAnalysis(ctx, "underutilized")
	s.logger.InfoContext(ctx, "analysis completed",
		slog.String("analysis", "underutilized"),
		slog.String("workbook_id", id),
		slog.String("metric", string(metric)),
		slog.Int("recent_flagged", len(result.Recent.Vehicles)),
		slog.Int("vehicles", len(result.LongTerm.Vehicles)),
	)
	return &result, nil
}

// Allocation runs the allocated-vs-available analysis. It needs both the
// Vehicles sheet (for the partition) and the Trips sheet (for the join).
func (s *AnalysisService) Allocation(ctx context.Context, id string) (*fleet.AllocationResult, error) {
	entry, err := s.GetWorkbook(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entry.Workbook.HasVehicles() {
		return nil, fmt.Errorf("workbook %q: %w", id, ErrVehiclesSheetMissing)
	}
	if !entry.Workbook.HasTrips() {
		return nil, fmt.Errorf("workbook %q: %w", id, ErrTripsSheetMissing)
	}

	result := fleet.Allocation(entry.Workbook.Vehicles, entry.Workbook.Trips)

	s.metrics.RecordAnalysis(ctx, "allocation")
	s.logger.InfoContext(ctx, "analysis completed",
		slog.String("analysis", "allocation"),
		slog.String("workbook_id", id),
		slog.Int("allocated", result.AllocatedCount),
		slog.Int("available", result.AvailableCount),
	)
	return &result, nil
}

// HighIdle runs the high idle time analysis.
func (s *AnalysisService) HighIdle(ctx context.Context, id string) (*fleet.HighIdleResult, error) {
	trips, err := s.trips(ctx, id)
	if err != nil {
		return nil, err
	}

	result := fleet.HighIdle(trips, s.cfg.IdleThresholdHours)

	s.metrics.RecordAnalysis(ctx, "idle_time")
	s.logger.InfoContext(ctx, "analysis completed",
		slog.String("analysis", "idle_time"),
		slog.String("workbook_id", id),
		slog.Int("flagged", len(result.Trips)),
	)
	return &result, nil
}

// PeakUsage runs the hour-of-day and day-of-week distribution analysis.
func (s *AnalysisService) PeakUsage(ctx context.Context, id string) (*fleet.PeakUsageResult, error) {
	trips, err := s.trips(ctx, id)
	if err != nil {
		return nil, err
	}

	result := fleet.PeakUsage(trips)

	s.metrics.RecordAnalysis(ctx, "peak_usage")
	s.logger.InfoContext(ctx, "analysis completed",
		slog.String("analysis", "peak_usage"),
		slog.String("workbook_id", id),
	)
	return &result, nil
}

// DriverTripCounts runs the driver leaderboard analysis.
func (s *AnalysisService) DriverTripCounts(ctx context.Context, id string) (*fleet.DriverTripCountsResult, error) {
	trips, err := s.trips(ctx, id)
	if err != nil {
		return nil, err
	}

	result := fleet.DriverTripCounts(trips, s.cfg.DriverLeaderboardSize)

	s.metrics.RecordAnalysis(ctx, "driver_trips")
	s.logger.InfoContext(ctx, "analysis completed",
		slog.String("analysis", "driver_trips"),
		slog.String("workbook_id", id),
		slog.Int("top", len(result.Top)),
		slog.Int("bottom", len(result.Bottom)),
	)
	return &result, nil
}

// SpeedAnomalies runs the slow-trip analysis.
func (s *AnalysisService) SpeedAnomalies(ctx context.Context, id string) (*fleet.SpeedAnomalyResult, error) {
	trips, err := s.trips(ctx, id)
	if err != nil {
		return nil, err
	}

	result := fleet.SpeedAnomalies(trips, s.cfg.AssumedAvgSpeedKMH, s.cfg.SlowSpeedThresholdKMH)

	s.metrics.RecordAnalysis(ctx, "speed_anomalies")
	s.logger.InfoContext(ctx, "analysis completed",
		slog.String("analysis", "speed_anomalies"),
		slog.String("workbook_id", id),
		slog.Int("flagged", len(result.Trips)),
	)
	return &result, nil
}
