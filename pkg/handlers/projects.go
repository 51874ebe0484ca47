package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/models"
	"github.com/terramatch-studio/terramatch-engine/pkg/services"
)

// Middleware wraps a handler, typically with the session guard.
type Middleware func(http.HandlerFunc) http.HandlerFunc

// MatchesResponse is the read-time reconciliation view of one project.
type MatchesResponse struct {
	Results      []models.MatchResult `json:"results"`
	MatchedCount int                  `json:"matchedCount"`
	// CanVisualize is true once a site photo is set and at least one task
	// has a validated match.
	CanVisualize bool `json:"canVisualize"`
}

// ProjectsHandler handles project HTTP requests.
type ProjectsHandler struct {
	projects services.ProjectService
	catalog  services.CatalogService
	matcher  services.Matcher
	logger   *zap.Logger
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(projects services.ProjectService, catalog services.CatalogService, matcher services.Matcher, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		projects: projects,
		catalog:  catalog,
		matcher:  matcher,
		logger:   logger,
	}
}

// RegisterRoutes registers the project routes on the given mux behind the
// session guard.
func (h *ProjectsHandler) RegisterRoutes(mux *http.ServeMux, requireSession Middleware) {
	mux.HandleFunc("GET /api/projects", requireSession(h.List))
	mux.HandleFunc("POST /api/projects", requireSession(h.Create))
	mux.HandleFunc("GET /api/projects/{pid}", requireSession(h.Get))
	mux.HandleFunc("DELETE /api/projects/{pid}", requireSession(h.Delete))

	mux.HandleFunc("POST /api/projects/{pid}/tasks", requireSession(h.AddTask))
	mux.HandleFunc("PATCH /api/projects/{pid}/tasks/{tid}", requireSession(h.UpdateTask))
	mux.HandleFunc("DELETE /api/projects/{pid}/tasks/{tid}", requireSession(h.RemoveTask))
	mux.HandleFunc("POST /api/projects/{pid}/tasks/{tid}/select-product", requireSession(h.SelectProduct))

	mux.HandleFunc("PUT /api/projects/{pid}/site-photo", requireSession(h.SetSitePhoto))
	mux.HandleFunc("DELETE /api/projects/{pid}/site-photo", requireSession(h.ClearSitePhoto))

	mux.HandleFunc("GET /api/projects/{pid}/matches", requireSession(h.Matches))
}

// List handles GET /api/projects.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		h.writeError(w, notFoundOrInternal(w, err, "projects"))
		return
	}
	h.writeJSON(w, http.StatusOK, projects)
}

// Create handles POST /api/projects.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid project payload"))
		return
	}

	project, err := h.projects.Create(r.Context(), req.Name)
	if err != nil {
		h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "invalid_project", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusCreated, project)
}

// Get handles GET /api/projects/{pid}.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.Context(), r.PathValue("pid"))
	if err != nil {
		h.writeError(w, notFoundOrInternal(w, err, "project"))
		return
	}
	h.writeJSON(w, http.StatusOK, project)
}

// Delete handles DELETE /api/projects/{pid}.
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.Delete(r.Context(), r.PathValue("pid")); err != nil {
		h.logger.Error("failed to delete project", zap.Error(err))
		h.writeError(w, notFoundOrInternal(w, err, "project"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddTask handles POST /api/projects/{pid}/tasks.
func (h *ProjectsHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.projects.AddTask(r.Context(), r.PathValue("pid"))
	if err != nil {
		h.writeError(w, notFoundOrInternal(w, err, "project"))
		return
	}
	h.writeJSON(w, http.StatusCreated, task)
}

// UpdateTask handles PATCH /api/projects/{pid}/tasks/{tid}.
func (h *ProjectsHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var update services.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid task payload"))
		return
	}

	task, err := h.projects.UpdateTask(r.Context(), r.PathValue("pid"), r.PathValue("tid"), update)
	if err != nil {
		h.writeError(w, notFoundOrInternal(w, err, "task"))
		return
	}
	h.writeJSON(w, http.StatusOK, task)
}

// RemoveTask handles DELETE /api/projects/{pid}/tasks/{tid}.
func (h *ProjectsHandler) RemoveTask(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.RemoveTask(r.Context(), r.PathValue("pid"), r.PathValue("tid")); err != nil {
		h.writeError(w, notFoundOrInternal(w, err, "task"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectProduct handles POST /api/projects/{pid}/tasks/{tid}/select-product.
// The chosen product's name and reference overwrite the task's.
func (h *ProjectsHandler) SelectProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reference string `json:"reference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid selection payload"))
		return
	}

	task, err := h.projects.SelectProduct(r.Context(), r.PathValue("pid"), r.PathValue("tid"), req.Reference)
	if err != nil {
		h.writeError(w, notFoundOrInternal(w, err, "product"))
		return
	}
	h.writeJSON(w, http.StatusOK, task)
}

// SetSitePhoto handles PUT /api/projects/{pid}/site-photo.
func (h *ProjectsHandler) SetSitePhoto(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Photo string `json:"photo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Photo == "" {
		h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid photo payload"))
		return
	}

	if err := h.projects.SetSitePhoto(r.Context(), r.PathValue("pid"), req.Photo); err != nil {
		h.writeError(w, notFoundOrInternal(w, err, "project"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearSitePhoto handles DELETE /api/projects/{pid}/site-photo.
func (h *ProjectsHandler) ClearSitePhoto(w http.ResponseWriter, r *http.Request) {
	if err := h.projects.ClearSitePhoto(r.Context(), r.PathValue("pid")); err != nil {
		h.writeError(w, notFoundOrInternal(w, err, "project"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Matches handles GET /api/projects/{pid}/matches. Reconciliation is
// recomputed from the current task list and catalog on every call.
func (h *ProjectsHandler) Matches(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.Get(r.Context(), r.PathValue("pid"))
	if err != nil {
		h.writeError(w, notFoundOrInternal(w, err, "project"))
		return
	}

	catalog, err := h.catalog.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		h.writeError(w, notFoundOrInternal(w, err, "catalog"))
		return
	}

	results := services.MatchResults(h.matcher, project.Tasks, catalog)
	matched := 0
	for _, result := range results {
		if result.IsFound {
			matched++
		}
	}

	h.writeJSON(w, http.StatusOK, MatchesResponse{
		Results:      results,
		MatchedCount: matched,
		CanVisualize: matched > 0 && project.SitePhoto != "",
	})
}

func (h *ProjectsHandler) writeError(w http.ResponseWriter, err error) {
	if err != nil {
		h.logger.Error("failed to write error response", zap.Error(err))
	}
}

func (h *ProjectsHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	if err := WriteJSON(w, status, data); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
