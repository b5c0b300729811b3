package http

import (
	"context"

	"fleetpulse/internal/fleet"
	"fleetpulse/internal/services"
	"fleetpulse/internal/workbook"
)

// AnalysisService is the handler-facing surface of the analysis service.
// Declared here so handler tests can substitute a fake.
type AnalysisService interface {
	LoadWorkbook(ctx context.Context, filename string, data []byte) (*workbook.Entry, error)
	GetWorkbook(ctx context.Context, id string) (*workbook.Entry, error)
	Underutilized(ctx context.Context, id string, req services.UnderutilizedRequest) (*fleet.UnderutilizedResult, error)
	Allocation(ctx context.Context, id string) (*fleet.AllocationResult, error)
	HighIdle(ctx context.Context, id string) (*fleet.HighIdleResult, error)
	PeakUsage(ctx context.Context, id string) (*fleet.PeakUsageResult, error)
	DriverTripCounts(ctx context.Context, id string) (*fleet.DriverTripCountsResult, error)
	SpeedAnomalies(ctx context.Context, id string) (*fleet.SpeedAnomalyResult, error)
}
