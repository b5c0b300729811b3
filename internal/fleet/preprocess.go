package fleet

import (
	"time"

	"fleetpulse/pkg/contracts/domain"
)

// Preprocess derives TripDateTime and DurationHrs on every trip row.
//
// TripDateTime combines the calendar date of TripDate with the time-of-day
// of StartTime; it stays nil when either input is nil. DurationHrs is
// (EndTime - StartTime) in hours and may be negative when the sheet is
// inconsistent. clampNegative turns negative durations into zero; the
// default policy is to preserve them as-is.
func Preprocess(trips []domain.Trip, clampNegative bool) []domain.Trip {
	out := make([]domain.Trip, len(trips))
	for i, t := range trips {
		t.TripDateTime = combineDateTime(t.TripDate, t.StartTime)
		t.DurationHrs = durationHours(t.StartTime, t.EndTime, clampNegative)
		out[i] = t
	}
	return out
}

func combineDateTime(date, clock *time.Time) *time.Time {
	if date == nil || clock == nil {
		return nil
	}
	y, m, d := date.Date()
	hh, mm, ss := clock.Clock()
	dt := time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
	return &dt
}

func durationHours(start, end *time.Time, clampNegative bool) *float64 {
	if start == nil || end == nil {
		return nil
	}
	hrs := end.Sub(*start).Seconds() / 3600
	if clampNegative && hrs < 0 {
		hrs = 0
	}
	return &hrs
}
