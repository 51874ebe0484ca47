package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/apperrors"
	"github.com/terramatch-studio/terramatch-engine/pkg/services"
	"github.com/terramatch-studio/terramatch-engine/pkg/spreadsheet"
)

// 15 MB, enough for any realistic quote spreadsheet.
const maxUploadBytes = 15 << 20

// ImportsHandler handles quote and spreadsheet imports into a project.
type ImportsHandler struct {
	projects   services.ProjectService
	extraction services.ExtractionService
	logger     *zap.Logger
}

// NewImportsHandler creates a new imports handler.
func NewImportsHandler(projects services.ProjectService, extraction services.ExtractionService, logger *zap.Logger) *ImportsHandler {
	return &ImportsHandler{projects: projects, extraction: extraction, logger: logger}
}

// RegisterRoutes registers the import routes on the given mux behind the
// session guard.
func (h *ImportsHandler) RegisterRoutes(mux *http.ServeMux, requireSession Middleware) {
	mux.HandleFunc("POST /api/projects/{pid}/import/quote", requireSession(h.ImportQuote))
	mux.HandleFunc("POST /api/projects/{pid}/import/spreadsheet", requireSession(h.ImportSpreadsheet))
}

// ImportQuote handles POST /api/projects/{pid}/import/quote. The raw quote
// text goes through AI extraction and the resulting tasks are appended to
// the project.
func (h *ImportsHandler) ImportQuote(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("pid")

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid quote payload"))
		return
	}
	if req.Text == "" {
		h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Quote text is required"))
		return
	}

	tasks, err := h.extraction.ImportQuote(r.Context(), projectID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNothingExtracted):
			h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "nothing_extracted",
				"Aucune tâche n'a pu être extraite du devis."))
		default:
			h.logger.Error("quote import failed", zap.String("project_id", projectID), zap.Error(err))
			h.handleImportError(w, err, projectID)
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, tasks)
}

// ImportSpreadsheet handles POST /api/projects/{pid}/import/spreadsheet.
// Accepts a multipart upload under the "file" field, CSV or XLSX.
func (h *ImportsHandler) ImportSpreadsheet(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("pid")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "invalid_request", "A spreadsheet file is required"))
		return
	}
	defer file.Close()

	// Resolve the project before parsing so an unknown ID fails cheaply.
	if _, err := h.projects.Get(r.Context(), projectID); err != nil {
		h.writeError(w, notFoundOrInternal(w, err, "project"))
		return
	}

	tasks, err := spreadsheet.Import(file)
	if err != nil {
		switch {
		case errors.Is(err, spreadsheet.ErrEmptyFile):
			h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "empty_file",
				"Le fichier est vide."))
		case errors.Is(err, spreadsheet.ErrNoRowsMatched):
			h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "no_rows_matched",
				"Aucune ligne exploitable. Vérifiez les en-têtes du fichier."))
		default:
			h.logger.Error("spreadsheet parse failed",
				zap.String("project_id", projectID),
				zap.String("filename", header.Filename),
				zap.Error(err))
			h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "unreadable_file",
				"Le fichier n'a pas pu être lu."))
		}
		return
	}

	if err := h.projects.AppendTasks(r.Context(), projectID, tasks); err != nil {
		h.writeError(w, notFoundOrInternal(w, err, "project"))
		return
	}

	h.logger.Info("spreadsheet imported",
		zap.String("project_id", projectID),
		zap.String("filename", header.Filename),
		zap.Int("tasks", len(tasks)))
	h.writeJSON(w, http.StatusCreated, tasks)
}

// handleImportError distinguishes missing-project errors from AI failures.
func (h *ImportsHandler) handleImportError(w http.ResponseWriter, err error, projectID string) {
	if errors.Is(err, apperrors.ErrNotFound) {
		h.writeError(w, notFoundOrInternal(w, err, "project"))
		return
	}
	h.writeError(w, aiErrorResponse(w, err))
}

func (h *ImportsHandler) writeError(w http.ResponseWriter, err error) {
	if err != nil {
		h.logger.Error("failed to write error response", zap.Error(err))
	}
}

func (h *ImportsHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	if err := WriteJSON(w, status, data); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
