package domain

import "time"

// Trip is a single row of the Trips sheet. The temporal fields use nil as
// the missing-value marker: unparsable cells never fail the load, they
// simply stay nil and fall out of any comparison downstream.
type Trip struct {
	TripID    string `json:"trip_id"`
	VehicleID string `json:"vehicle_id"`
	DriverID  string `json:"driver_id"`

	TripDate  *time.Time `json:"trip_date,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	DistanceKM float64 `json:"distance_km"`

	// Derived by the preprocessor.
	TripDateTime *time.Time `json:"trip_datetime,omitempty"`
	DurationHrs  *float64   `json:"duration_hrs,omitempty"`

	// Row preserves the source row order for stable tie-breaking.
	Row int `json:"-"`
}

// Vehicle is a single row of the Vehicles sheet. Status is matched
// case-insensitively against "allocated" / "available"; any other value
// counts in neither bucket.
type Vehicle struct {
	VehicleID string `json:"vehicle_id"`
	Status    string `json:"status"`
}

// Driver is a single row of the Drivers sheet. Drivers are referenced from
// trips by ID only; the sheet itself feeds no analysis yet.
type Driver struct {
	DriverID string `json:"driver_id"`
	Name     string `json:"name,omitempty"`
}

// Hub is a single row of the Hubs sheet (loaded, not analyzed).
type Hub struct {
	HubID string `json:"hub_id"`
	Name  string `json:"name,omitempty"`
	City  string `json:"city,omitempty"`
}

// Client is a single row of the Clients sheet (loaded, not analyzed).
type Client struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name,omitempty"`
}

// Workbook holds every sheet of an uploaded fleet spreadsheet. A nil slice
// means the sheet was absent from the file; callers must check before use.
// Referential integrity between sheets is not enforced: a trip pointing at
// an unknown vehicle simply produces a zero-filled join.
type Workbook struct {
	Trips    []Trip    `json:"trips,omitempty"`
	Vehicles []Vehicle `json:"vehicles,omitempty"`
	Drivers  []Driver  `json:"drivers,omitempty"`
	Hubs     []Hub     `json:"hubs,omitempty"`
	Clients  []Client  `json:"clients,omitempty"`

	// SheetNames lists every sheet found in the file, in file order,
	// including sheets the analyses do not use.
	SheetNames []string `json:"sheet_names"`
}

// HasTrips reports whether the Trips sheet was present.
func (w *Workbook) HasTrips() bool { return w.Trips != nil }

// HasVehicles reports whether the Vehicles sheet was present.
func (w *Workbook) HasVehicles() bool { return w.Vehicles != nil }
