package exporter

import (
	"fleetpulse/internal/config"
	"fleetpulse/internal/fleet"
)

// RecentUnderutilizedTable renders the 7-day underutilization report.
func RecentUnderutilizedTable(res fleet.RecentUnderutilizedResult) Table {
	records := make([][]string, 0, len(res.Vehicles))
	for _, v := range res.Vehicles {
		records = append(records, []string{
			v.VehicleID,
			formatInt(v.Trips),
			formatFloat(v.DistanceKM),
		})
	}
	return Table{
		Filename: config.CSVUnderutilized7Days,
		Headers:  []string{"Vehicle ID", "Trips", "Distance KM"},
		Records:  records,
	}
}

// LongTermUnderutilizedTable renders the long-term utilization report. The
// fleet average column repeats the fleet-wide value on every row; when no
// vehicle is mature enough to define it the column is empty.
func LongTermUnderutilizedTable(res fleet.LongTermUnderutilizedResult) Table {
	fleetAvg := ""
	if res.FleetAvgTripsPerWeek != nil {
		fleetAvg = formatFloat(*res.FleetAvgTripsPerWeek)
	}

	records := make([][]string, 0, len(res.Vehicles))
	for _, v := range res.Vehicles {
		records = append(records, []string{
			v.VehicleID,
			formatInt(v.TotalTrips),
			formatFloat(v.TotalDistanceKM),
			formatDate(v.FirstTripDate),
			formatDate(v.LastTripDate),
			formatInt(v.DaysActive),
			formatFloat(v.AvgTripsPerWeek),
			fleetAvg,
			string(v.Classification),
		})
	}
	return Table{
		Filename: config.CSVUnderutilizedLongTerm,
		Headers: []string{
			"Vehicle ID", "Total Trips", "Total Distance KM",
			"First Trip", "Last Trip", "Days Active",
			"Avg Trips Per Week", "Fleet Avg Trips Per Week", "Classification",
		},
		Records: records,
	}
}

// AllocationTable renders the per-vehicle allocation join. The summary
// counts and ratio repeat on every row so the CSV stands alone.
func AllocationTable(res fleet.AllocationResult) Table {
	records := make([][]string, 0, len(res.Vehicles))
	for _, v := range res.Vehicles {
		records = append(records, []string{
			v.VehicleID,
			v.Status,
			formatInt(v.TripCount),
			formatInt(res.AllocatedCount),
			formatInt(res.AvailableCount),
			formatFloat(res.RatioPercent),
		})
	}
	return Table{
		Filename: config.CSVAllocation,
		Headers: []string{
			"Vehicle ID", "Status", "Trip Count",
			"Allocated Count", "Available Count", "Allocation Ratio Percent",
		},
		Records: records,
	}
}

// HighIdleTable renders the high idle time report.
func HighIdleTable(res fleet.HighIdleResult) Table {
	records := make([][]string, 0, len(res.Trips))
	for _, t := range res.Trips {
		records = append(records, []string{
			t.VehicleID,
			t.TripID,
			formatDateTime(t.TripDateTime),
			formatFloat(t.IdleHours),
		})
	}
	return Table{
		Filename: config.CSVHighIdleTime,
		Headers:  []string{"Vehicle ID", "Trip ID", "Trip DateTime", "Idle Hours"},
		Records:  records,
	}
}

// PeakUsageTable renders both frequency distributions into one file, the
// 24 hour buckets followed by the 7 Monday-first day buckets.
func PeakUsageTable(res fleet.PeakUsageResult) Table {
	records := make([][]string, 0, len(res.ByHour)+len(res.ByDay))
	for _, h := range res.ByHour {
		records = append(records, []string{"hour", formatInt(h.Hour), formatInt(h.Trips)})
	}
	for _, d := range res.ByDay {
		records = append(records, []string{"day", d.Day, formatInt(d.Trips)})
	}
	return Table{
		Filename: config.CSVPeakUsage,
		Headers:  []string{"Dimension", "Bucket", "Trips"},
		Records:  records,
	}
}

// DriverTripCountsTable renders both driver leaderboards into one file,
// tagged by group.
func DriverTripCountsTable(res fleet.DriverTripCountsResult) Table {
	records := make([][]string, 0, len(res.Top)+len(res.Bottom))
	for _, d := range res.Top {
		records = append(records, []string{"top", d.DriverID, formatInt(d.TripCount), formatFloat(d.DutyHours)})
	}
	for _, d := range res.Bottom {
		records = append(records, []string{"bottom", d.DriverID, formatInt(d.TripCount), formatFloat(d.DutyHours)})
	}
	return Table{
		Filename: config.CSVDriverTripCounts,
		Headers:  []string{"Group", "Driver ID", "Trip Count", "Duty Hours"},
		Records:  records,
	}
}

// SpeedAnomaliesTable renders the slow-trip report.
func SpeedAnomaliesTable(res fleet.SpeedAnomalyResult) Table {
	records := make([][]string, 0, len(res.Trips))
	for _, t := range res.Trips {
		records = append(records, []string{
			t.TripID,
			t.VehicleID,
			formatFloat(t.DistanceKM),
			formatFloat(t.DurationHrs),
			formatFloat(t.ExpectedDurationHrs),
			formatFloat(t.SpeedKMH),
		})
	}
	return Table{
		Filename: config.CSVSpeedAnomalies,
		Headers: []string{
			"Trip ID", "Vehicle ID", "Distance KM",
			"Duration Hrs", "Expected Duration Hrs", "Speed KMH",
		},
		Records: records,
	}
}
