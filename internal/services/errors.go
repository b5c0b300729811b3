package services

import "errors"

// Sentinel errors the transport layer maps to HTTP status codes with
// errors.Is. Each analysis names the sheet it cannot run without instead
// of failing deep inside the computation.
var (
	// ErrWorkbookNotFound means no workbook is registered under the ID.
	ErrWorkbookNotFound = errors.New("workbook not found")

	// ErrTripsSheetMissing means the workbook has no Trips sheet, which
	// every trip-based analysis requires.
	ErrTripsSheetMissing = errors.New("workbook has no Trips sheet")

	// ErrVehiclesSheetMissing means the workbook has no Vehicles sheet,
	// which the allocation analysis requires.
	ErrVehiclesSheetMissing = errors.New("workbook has no Vehicles sheet")

	// ErrInvalidParams means the request parameters failed validation.
	ErrInvalidParams = errors.New("invalid analysis parameters")
)
