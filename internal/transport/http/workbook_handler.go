package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "fleetpulse/internal/errors"
	"fleetpulse/internal/services"
)

// WorkbookHandler serves workbook upload and inspection.
type WorkbookHandler struct {
	service        AnalysisService
	errorHandler   *apierrors.ErrorHandler
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewWorkbookHandler creates a workbook handler.
func NewWorkbookHandler(service AnalysisService, errorHandler *apierrors.ErrorHandler, logger *slog.Logger, maxUploadBytes int64) *WorkbookHandler {
	return &WorkbookHandler{
		service:        service,
		errorHandler:   errorHandler,
		logger:         logger.With(slog.String("handler", "workbook")),
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the workbook routes.
func (h *WorkbookHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Upload)
	r.Get("/{workbookID}", h.Get)
	return r
}

// UploadResponse is the body returned after a successful upload.
type UploadResponse struct {
	WorkbookID string   `json:"workbook_id"`
	Filename   string   `json:"filename"`
	Sheets     []string `json:"sheets"`
	Trips      int      `json:"trips"`
	Vehicles   int      `json:"vehicles"`
}

// Upload handles POST /api/workbooks. The workbook arrives as the "file"
// part of a multipart form and is parsed synchronously; the response
// carries the ID all analysis endpoints key on.
func (h *WorkbookHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		// The limiter's error may arrive wrapped inside the multipart
		// reader's error text rather than as a typed error.
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large") {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	entry, err := h.service.LoadWorkbook(ctx, header.Filename, data)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.WorkbookParseError(err))
		return
	}

	h.logger.InfoContext(ctx, "workbook uploaded",
		slog.String("workbook_id", entry.ID),
		slog.String("filename", header.Filename),
		slog.Int("bytes", len(data)),
	)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, UploadResponse{
		WorkbookID: entry.ID,
		Filename:   entry.Filename,
		Sheets:     entry.Workbook.SheetNames,
		Trips:      len(entry.Workbook.Trips),
		Vehicles:   len(entry.Workbook.Vehicles),
	})
}

// Get handles GET /api/workbooks/{workbookID}, returning upload metadata.
func (h *WorkbookHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "workbookID")

	entry, err := h.service.GetWorkbook(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrWorkbookNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrWorkbookNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, UploadResponse{
		WorkbookID: entry.ID,
		Filename:   entry.Filename,
		Sheets:     entry.Workbook.SheetNames,
		Trips:      len(entry.Workbook.Trips),
		Vehicles:   len(entry.Workbook.Vehicles),
	})
}
