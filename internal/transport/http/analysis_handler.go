package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "fleetpulse/internal/errors"
	"fleetpulse/internal/exporter"
	"fleetpulse/internal/services"
)

// AnalysisHandler serves the six canned analyses for a stored workbook.
type AnalysisHandler struct {
	service      AnalysisService
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewAnalysisHandler creates an analysis handler.
func NewAnalysisHandler(service AnalysisService, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("handler", "analysis")),
	}
}

// Routes returns the analysis routes, mounted under a workbook ID.
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/underutilized", h.Underutilized)
	r.Get("/allocation", h.Allocation)
	r.Get("/idle-time", h.IdleTime)
	r.Get("/peak-usage", h.PeakUsage)
	r.Get("/driver-trips", h.DriverTrips)
	r.Get("/speed-anomalies", h.SpeedAnomalies)
	return r
}

// handleServiceError maps service sentinels onto API errors.
func (h *AnalysisHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrWorkbookNotFound):
		h.errorHandler.HandleError(w, r, apierrors.ErrWorkbookNotFound)
	case errors.Is(err, services.ErrTripsSheetMissing):
		h.errorHandler.HandleError(w, r, apierrors.SheetMissingError("Trips"))
	case errors.Is(err, services.ErrVehiclesSheetMissing):
		h.errorHandler.HandleError(w, r, apierrors.SheetMissingError("Vehicles"))
	case errors.Is(err, services.ErrInvalidParams):
		h.errorHandler.HandleError(w, r, apierrors.NewValidationError(err.Error()))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}

// wantsCSV reports whether the request asked for CSV output.
func wantsCSV(r *http.Request) bool {
	return r.URL.Query().Get("format") == "csv"
}

// respondCSV streams a rendered table with its fixed export filename.
func (h *AnalysisHandler) respondCSV(w http.ResponseWriter, r *http.Request, t exporter.Table) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", t.Filename))
	if err := exporter.StreamTable(w, t, true); err != nil {
		h.logger.ErrorContext(r.Context(), "CSV stream failed",
			slog.String("filename", t.Filename),
			slog.String("error", err.Error()))
	}
}

// Underutilized handles GET .../analyses/underutilized. Query parameters:
// metric (trips|distance), threshold (number), and for CSV output window
// (recent|longterm) to pick which of the two reports to export.
func (h *AnalysisHandler) Underutilized(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workbookID")

	req := services.UnderutilizedRequest{Metric: r.URL.Query().Get("metric")}
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("threshold", "must be a number"))
			return
		}
		req.Threshold = &threshold
	}

	result, err := h.service.Underutilized(r.Context(), id, req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if wantsCSV(r) {
		if r.URL.Query().Get("window") == "longterm" {
			h.respondCSV(w, r, exporter.LongTermUnderutilizedTable(result.LongTerm))
		} else {
			h.respondCSV(w, r, exporter.RecentUnderutilizedTable(result.Recent))
		}
		return
	}
	render.JSON(w, r, result)
}

// Allocation handles GET .../analyses/allocation.
func (h *AnalysisHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workbookID")

	result, err := h.service.Allocation(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if wantsCSV(r) {
		h.respondCSV(w, r, exporter.AllocationTable(*result))
		return
	}
	render.JSON(w, r, result)
}

// IdleTime handles GET .../analyses/idle-time.
func (h *AnalysisHandler) IdleTime(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workbookID")

	result, err := h.service.HighIdle(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if wantsCSV(r) {
		h.respondCSV(w, r, exporter.HighIdleTable(*result))
		return
	}
	render.JSON(w, r, result)
}

// PeakUsage handles GET .../analyses/peak-usage.
func (h *AnalysisHandler) PeakUsage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workbookID")

	result, err := h.service.PeakUsage(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if wantsCSV(r) {
		h.respondCSV(w, r, exporter.PeakUsageTable(*result))
		return
	}
	render.JSON(w, r, result)
}

// DriverTrips handles GET .../analyses/driver-trips.
func (h *AnalysisHandler) DriverTrips(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workbookID")

	result, err := h.service.DriverTripCounts(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if wantsCSV(r) {
		h.respondCSV(w, r, exporter.DriverTripCountsTable(*result))
		return
	}
	render.JSON(w, r, result)
}

// SpeedAnomalies handles GET .../analyses/speed-anomalies.
func (h *AnalysisHandler) SpeedAnomalies(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "workbookID")

	result, err := h.service.SpeedAnomalies(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if wantsCSV(r) {
		h.respondCSV(w, r, exporter.SpeedAnomaliesTable(*result))
		return
	}
	render.JSON(w, r, result)
}
