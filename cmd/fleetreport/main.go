// Command fleetreport runs every fleet analysis against one workbook and
// writes the full set of CSV reports, without starting the server.
//
// Usage:
//
//	fleetreport -file fleet.xlsx -out reports/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"fleetpulse/internal/config"
	"fleetpulse/internal/exporter"
	"fleetpulse/internal/infrastructure"
	"fleetpulse/internal/services"
	"fleetpulse/internal/workbook"
)

func main() {
	var (
		filePath = flag.String("file", "", "path to the fleet xlsx workbook (required)")
		outDir   = flag.String("out", "reports", "directory to write CSV reports into")
		metric   = flag.String("metric", "trips", "underutilization metric: trips or distance")
	)
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*filePath, *outDir, *metric); err != nil {
		fmt.Fprintf(os.Stderr, "fleetreport: %v\n", err)
		os.Exit(1)
	}
}

func run(filePath, outDir, metric string) error {
	cfg := config.Default()
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read workbook: %w", err)
	}

	ctx := context.Background()
	store := workbook.NewStore(logger, cfg.Analysis.ClampNegativeDurations)
	metrics, err := infrastructure.CreateBusinessMetrics(nil)
	if err != nil {
		return err
	}
	service := services.NewAnalysisService(store, cfg.Analysis, logger, metrics)

	entry, err := service.LoadWorkbook(ctx, filePath, data)
	if err != nil {
		return fmt.Errorf("load workbook: %w", err)
	}

	writer := exporter.NewCSVWriter(outDir, logger)
	var tables []exporter.Table

	underutilized, err := service.Underutilized(ctx, entry.ID, services.UnderutilizedRequest{Metric: metric})
	if err != nil {
		return fmt.Errorf("underutilized: %w", err)
	}
	tables = append(tables,
		exporter.RecentUnderutilizedTable(underutilized.Recent),
		exporter.LongTermUnderutilizedTable(underutilized.LongTerm),
	)

	// Allocation needs the Vehicles sheet; the other reports only need
	// trips, so a missing sheet skips this one report instead of failing
	// the whole run.
	if allocation, err := service.Allocation(ctx, entry.ID); err != nil {
		fmt.Fprintf(os.Stderr, "fleetreport: skipping allocation: %v\n", err)
	} else {
		tables = append(tables, exporter.AllocationTable(*allocation))
	}

	idle, err := service.HighIdle(ctx, entry.ID)
	if err != nil {
		return fmt.Errorf("idle time: %w", err)
	}
	tables = append(tables, exporter.HighIdleTable(*idle))

	peak, err := service.PeakUsage(ctx, entry.ID)
	if err != nil {
		return fmt.Errorf("peak usage: %w", err)
	}
	tables = append(tables, exporter.PeakUsageTable(*peak))

	drivers, err := service.DriverTripCounts(ctx, entry.ID)
	if err != nil {
		return fmt.Errorf("driver trip counts: %w", err)
	}
	tables = append(tables, exporter.DriverTripCountsTable(*drivers))

	speed, err := service.SpeedAnomalies(ctx, entry.ID)
	if err != nil {
		return fmt.Errorf("speed anomalies: %w", err)
	}
	tables = append(tables, exporter.SpeedAnomaliesTable(*speed))

	start := time.Now()
	for _, t := range tables {
		if err := writer.WriteTable(t); err != nil {
			return fmt.Errorf("write %s: %w", t.Filename, err)
		}
	}

	fmt.Printf("wrote %d reports to %s in %s\n", len(tables), outDir, time.Since(start).Round(time.Millisecond))
	return nil
}
