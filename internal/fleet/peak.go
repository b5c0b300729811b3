package fleet

import (
	"time"

	"fleetpulse/pkg/contracts/domain"
)

// HourCount is the trip count for one hour of day.
type HourCount struct {
	Hour  int `json:"hour"`
	Trips int `json:"trips"`
}

// DayCount is the trip count for one day of week.
type DayCount struct {
	Day   string `json:"day"`
	Trips int    `json:"trips"`
}

// PeakUsageResult carries the two frequency distributions behind the peak
// usage charts.
type PeakUsageResult struct {
	ByHour []HourCount `json:"by_hour"`
	ByDay  []DayCount  `json:"by_day"`
}

// weekOrder is the canonical Monday-first day ordering. The report always
// lists all seven days in this order, whatever the data contains.
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// PeakUsage derives hour-of-day and day-of-week trip distributions from
// TripDateTime. Trips missing the derived date-time are excluded. Both
// distributions are dense: every hour 0-23 and every day Monday-Sunday
// appears, zero counts included.
func PeakUsage(trips []domain.Trip) PeakUsageResult {
	var hours [24]int
	days := make(map[time.Weekday]int, 7)
	for _, t := range trips {
		if t.TripDateTime == nil {
			continue
		}
		hours[t.TripDateTime.Hour()]++
		days[t.TripDateTime.Weekday()]++
	}

	result := PeakUsageResult{
		ByHour: make([]HourCount, 24),
		ByDay:  make([]DayCount, 0, 7),
	}
	for h, n := range hours {
		result.ByHour[h] = HourCount{Hour: h, Trips: n}
	}
	for _, d := range weekOrder {
		result.ByDay = append(result.ByDay, DayCount{Day: d.String(), Trips: days[d]})
	}
	return result
}
