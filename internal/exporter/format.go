package exporter

import (
	"fmt"
	"time"
)

// formatFloat formats a float64 for CSV output with exactly 2 decimal
// places, so 13.4 appears as 13.40.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatDate renders a calendar date without a time component
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// formatDateTime renders a full timestamp
func formatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
