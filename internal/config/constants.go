package config

// Domain constants behind the analyses. These are the named defaults for
// AnalysisConfig; the short-term thresholds (trip count / distance) can
// additionally be overridden per request.
const (
	// DefaultAssumedAvgSpeedKMH is the assumed fleet average speed used to
	// compute a trip's expected duration.
	DefaultAssumedAvgSpeedKMH = 40.0

	// DefaultSlowSpeedThresholdKMH marks trips slower than this as
	// anomalies (delayed or stuck).
	DefaultSlowSpeedThresholdKMH = 10.0

	// DefaultIdleThresholdHours is the gap between consecutive trips of a
	// vehicle beyond which the gap counts as high idle time.
	DefaultIdleThresholdHours = 6.0

	// DefaultMaturityWindowDays is the minimum activity span before a
	// vehicle takes part in the fleet-average computation.
	DefaultMaturityWindowDays = 28

	// DefaultRecentWindowDays is the short-term utilization window.
	DefaultRecentWindowDays = 7

	// DefaultTripCountThreshold and DefaultDistanceThresholdKM are the
	// suggested short-term underutilization thresholds.
	DefaultTripCountThreshold  = 3.0
	DefaultDistanceThresholdKM = 100.0

	// DefaultDriverLeaderboardSize bounds the top/bottom driver lists.
	DefaultDriverLeaderboardSize = 10

	// DefaultHistogramBins is the bin count of the trip-count histogram.
	DefaultHistogramBins = 20

	// DefaultMaxUploadBytes caps workbook uploads at 20 MiB.
	DefaultMaxUploadBytes = 20 << 20
)

// Fixed CSV export filenames, one per analysis output.
const (
	CSVUnderutilized7Days    = "underutilized_7days.csv"
	CSVUnderutilizedLongTerm = "underutilized_longterm.csv"
	CSVAllocation            = "allocation.csv"
	CSVHighIdleTime          = "high_idle_time.csv"
	CSVPeakUsage             = "peak_usage.csv"
	CSVDriverTripCounts      = "driver_trip_counts.csv"
	CSVSpeedAnomalies        = "trip_speed_anomalies.csv"
)
