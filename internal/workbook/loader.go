package workbook

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"fleetpulse/pkg/contracts/domain"
)

// Sheet names the loader recognizes, matched case-insensitively. Any other
// sheet is recorded in SheetNames and otherwise ignored.
const (
	SheetTrips    = "Trips"
	SheetVehicles = "Vehicles"
	SheetDrivers  = "Drivers"
	SheetHubs     = "Hubs"
	SheetClients  = "Clients"
)

// Parse reads an xlsx workbook and extracts every recognized sheet. Absent
// sheets leave the corresponding slice nil; a present but empty sheet
// yields an empty non-nil slice. Parse only fails when the file itself is
// not a readable workbook, never on malformed cell content.
func Parse(r io.Reader, logger *slog.Logger) (*domain.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	wb := &domain.Workbook{}
	for _, name := range f.GetSheetList() {
		wb.SheetNames = append(wb.SheetNames, name)

		rows, err := f.GetRows(name)
		if err != nil {
			logger.Warn("skipping unreadable sheet",
				slog.String("sheet", name),
				slog.String("error", err.Error()))
			continue
		}

		switch strings.ToLower(strings.TrimSpace(name)) {
		case strings.ToLower(SheetTrips):
			wb.Trips = parseTrips(rows, logger)
		case strings.ToLower(SheetVehicles):
			wb.Vehicles = parseVehicles(rows)
		case strings.ToLower(SheetDrivers):
			wb.Drivers = parseDrivers(rows)
		case strings.ToLower(SheetHubs):
			wb.Hubs = parseHubs(rows)
		case strings.ToLower(SheetClients):
			wb.Clients = parseClients(rows)
		}
	}

	logger.Info("workbook parsed",
		slog.Int("sheets", len(wb.SheetNames)),
		slog.Int("trips", len(wb.Trips)),
		slog.Int("vehicles", len(wb.Vehicles)))

	return wb, nil
}

// headerMap maps normalized column names to their positions in the header
// row. Matching is case-insensitive and ignores unit suffixes such as
// "Distance (km)".
func headerMap(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if idx := strings.Index(key, "("); idx > 0 {
			key = strings.TrimSpace(key[:idx])
		}
		if key != "" {
			cols[key] = i
		}
	}
	return cols
}

func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseTrips(rows [][]string, logger *slog.Logger) []domain.Trip {
	trips := []domain.Trip{}
	if len(rows) == 0 {
		return trips
	}
	cols := headerMap(rows[0])

	for i, row := range rows[1:] {
		id := cell(row, cols, "trip id")
		vehicle := cell(row, cols, "vehicle id")
		driver := cell(row, cols, "driver id")
		if id == "" && vehicle == "" && driver == "" {
			continue
		}
		trips = append(trips, domain.Trip{
			TripID:     id,
			VehicleID:  vehicle,
			DriverID:   driver,
			TripDate:   parseTemporal(cell(row, cols, "trip date")),
			StartTime:  parseTemporal(cell(row, cols, "start time")),
			EndTime:    parseTemporal(cell(row, cols, "end time")),
			DistanceKM: parseFloat(cell(row, cols, "distance")),
			Row:        i,
		})
	}

	logger.Debug("trips sheet parsed", slog.Int("rows", len(trips)))
	return trips
}

func parseVehicles(rows [][]string) []domain.Vehicle {
	vehicles := []domain.Vehicle{}
	if len(rows) == 0 {
		return vehicles
	}
	cols := headerMap(rows[0])
	for _, row := range rows[1:] {
		id := cell(row, cols, "vehicle id")
		if id == "" {
			continue
		}
		vehicles = append(vehicles, domain.Vehicle{
			VehicleID: id,
			Status:    cell(row, cols, "status"),
		})
	}
	return vehicles
}

func parseDrivers(rows [][]string) []domain.Driver {
	drivers := []domain.Driver{}
	if len(rows) == 0 {
		return drivers
	}
	cols := headerMap(rows[0])
	for _, row := range rows[1:] {
		id := cell(row, cols, "driver id")
		if id == "" {
			continue
		}
		drivers = append(drivers, domain.Driver{
			DriverID: id,
			Name:     cell(row, cols, "name"),
		})
	}
	return drivers
}

func parseHubs(rows [][]string) []domain.Hub {
	hubs := []domain.Hub{}
	if len(rows) == 0 {
		return hubs
	}
	cols := headerMap(rows[0])
	for _, row := range rows[1:] {
		id := cell(row, cols, "hub id")
		if id == "" {
			continue
		}
		hubs = append(hubs, domain.Hub{
			HubID: id,
			Name:  cell(row, cols, "name"),
			City:  cell(row, cols, "city"),
		})
	}
	return hubs
}

func parseClients(rows [][]string) []domain.Client {
	clients := []domain.Client{}
	if len(rows) == 0 {
		return clients
	}
	cols := headerMap(rows[0])
	for _, row := range rows[1:] {
		id := cell(row, cols, "client id")
		if id == "" {
			continue
		}
		clients = append(clients, domain.Client{
			ClientID: id,
			Name:     cell(row, cols, "name"),
		})
	}
	return clients
}

// temporalLayouts covers the date, date-time, and time-of-day forms the
// sheets show up with in practice. Time-only values land on Go's zero date,
// which is fine: only the clock component and start/end differences are
// ever used.
var temporalLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
}

// parseTemporal coerces a cell into a time value. Excel serial numbers are
// converted through excelize; everything else is tried against the known
// layouts. Unparsable cells become nil, the missing-value marker, and are
// never an error.
func parseTemporal(s string) *time.Time {
	if s == "" {
		return nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return &t
		}
		return nil
	}
	for _, layout := range temporalLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return v
}
