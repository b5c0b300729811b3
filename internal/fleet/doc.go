// Package fleet implements the trip preprocessor and the six fleet
// analyses: vehicle underutilization, allocation ratio, high idle time,
// peak usage, driver trip counts, and trip-speed anomalies.
//
// Every analysis is a pure function over preprocessed trip rows. Time never
// comes from the clock inside this package; callers inject "now" so the
// 7-day window stays testable. Missing values are nil pointers and any
// comparison against nil is false, so malformed rows fall out of reports
// instead of failing them.
package fleet
