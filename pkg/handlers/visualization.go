package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/apperrors"
	"github.com/terramatch-studio/terramatch-engine/pkg/services"
)

// VisualizationResponse carries a freshly generated render.
type VisualizationResponse struct {
	Image string `json:"image"`
}

// VisualizationHandler handles AI render requests.
type VisualizationHandler struct {
	visualization services.VisualizationService
	logger        *zap.Logger
}

// NewVisualizationHandler creates a new visualization handler.
func NewVisualizationHandler(visualization services.VisualizationService, logger *zap.Logger) *VisualizationHandler {
	return &VisualizationHandler{visualization: visualization, logger: logger}
}

// RegisterRoutes registers the visualization route on the given mux behind
// the session guard.
func (h *VisualizationHandler) RegisterRoutes(mux *http.ServeMux, requireSession Middleware) {
	mux.HandleFunc("POST /api/projects/{pid}/visualize", requireSession(h.Generate))
}

// Generate handles POST /api/projects/{pid}/visualize.
func (h *VisualizationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("pid")

	image, err := h.visualization.Generate(r.Context(), projectID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			h.writeError(w, notFoundOrInternal(w, err, "project"))
		case errors.Is(err, apperrors.ErrNoSitePhoto):
			h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "no_site_photo",
				"Ajoutez une photo du terrain avant de générer une visualisation."))
		case errors.Is(err, apperrors.ErrNoValidatedMatches):
			h.writeError(w, ErrorResponse(w, http.StatusBadRequest, "no_validated_matches",
				"Aucun produit du catalogue ne correspond aux tâches du projet."))
		case errors.Is(err, apperrors.ErrNoRender):
			h.writeError(w, ErrorResponse(w, http.StatusBadGateway, "no_render",
				"Le modèle n'a pas produit d'image. Réessayez."))
		default:
			h.logger.Error("visualization failed", zap.String("project_id", projectID), zap.Error(err))
			h.writeError(w, aiErrorResponse(w, err))
		}
		return
	}

	h.writeJSON(w, http.StatusOK, VisualizationResponse{Image: image})
}

func (h *VisualizationHandler) writeError(w http.ResponseWriter, err error) {
	if err != nil {
		h.logger.Error("failed to write error response", zap.Error(err))
	}
}

func (h *VisualizationHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	if err := WriteJSON(w, status, data); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
