package handlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/terramatch-studio/terramatch-engine/pkg/config"
)

// SessionName is the operator session cookie.
const SessionName = "terramatch-session"

const sessionMaxAge = 12 * 60 * 60 // 12 hours

// LoginRequest is the credential payload for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OperatorResponse describes the signed-in operator.
type OperatorResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthHandler implements the single-operator authentication gate. The
// credential check is a straight comparison against the configured pair;
// there is deliberately no user store behind it.
type AuthHandler struct {
	cfg    *config.Config
	store  *sessions.CookieStore
	logger *zap.Logger
}

// NewAuthHandler creates the auth handler and its cookie session store.
// The session secret is SHA-256 hashed to derive a consistent 32-byte
// signing key.
func NewAuthHandler(cfg *config.Config, logger *zap.Logger) *AuthHandler {
	key := sha256.Sum256([]byte(cfg.SessionSecret))
	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.Env != "local",
		SameSite: http.SameSiteLaxMode,
	}

	return &AuthHandler{cfg: cfg, store: store, logger: logger}
}

// RegisterRoutes registers the auth handler's routes on the given mux.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/login", h.Login)
	mux.HandleFunc("POST /api/logout", h.Logout)
	mux.HandleFunc("GET /api/me", h.RequireSession(h.Me))
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid login payload")
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.cfg.Operator.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.Operator.Password)) == 1
	if !emailOK || !passwordOK {
		h.logger.Warn("login rejected", zap.String("email", req.Email))
		h.writeError(w, http.StatusUnauthorized, "invalid_credentials", "Identifiants incorrects. Veuillez réessayer.")
		return
	}

	session, _ := h.store.Get(r, SessionName)
	session.Values["email"] = h.cfg.Operator.Email
	if err := session.Save(r, w); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal_error", "Failed to open session")
		return
	}

	h.logger.Info("operator signed in", zap.String("email", h.cfg.Operator.Email))
	h.writeJSON(w, http.StatusOK, OperatorResponse{
		Email: h.cfg.Operator.Email,
		Name:  h.cfg.Operator.Name,
	})
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, SessionName)
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		h.logger.Error("failed to clear session", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, OperatorResponse{
		Email: h.cfg.Operator.Email,
		Name:  h.cfg.Operator.Name,
	})
}

// RequireSession guards a handler behind the operator session.
func (h *AuthHandler) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := h.store.Get(r, SessionName)
		if err != nil || session.IsNew {
			h.writeError(w, http.StatusUnauthorized, "unauthorized", "Sign in first")
			return
		}
		if _, ok := session.Values["email"].(string); !ok {
			h.writeError(w, http.StatusUnauthorized, "unauthorized", "Sign in first")
			return
		}
		next(w, r)
	}
}

func (h *AuthHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("failed to write error response", zap.Error(err))
	}
}

func (h *AuthHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	if err := WriteJSON(w, status, data); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
