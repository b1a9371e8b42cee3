package http

import (
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

type sessionRequest struct {
	UserID string `json:"user_id"`
}

type sessionResponse struct {
	UserID string `json:"user_id"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{UserID: s.store.CurrentUser()})
}

// handleSignIn loads the collections for the signed-in user. The actual
// authentication lives in the external UI layer; this endpoint only
// tells the core which user's snapshot to own.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	userID := sanitizeInput(req.UserID)
	if userID == "" {
		writeError(w, http.StatusUnprocessableEntity, "user_id is required")
		return
	}

	s.invalidateSummary()
	if err := s.store.Load(r.Context(), userID); err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to load user collections",
			log.FieldUserID, userID, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to load user data")
		return
	}
	s.summaryCache.Delete(userID)

	writeJSON(w, http.StatusOK, sessionResponse{UserID: userID})
}

// handleSignOut clears the collections without persisting them.
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	s.invalidateSummary()
	if err := s.store.Load(r.Context(), ""); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type categoryResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// handleListCategories serves the canonical category metadata table so
// UI components reference one source instead of duplicating lookup
// tables.
func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	cats := core.Categories()
	out := make([]categoryResponse, len(cats))
	for i, c := range cats {
		info := c.Info()
		out[i] = categoryResponse{
			ID:    string(c),
			Label: info.Label,
			Color: info.Color,
			Icon:  info.Icon,
		}
	}
	writeJSON(w, http.StatusOK, out)
}
