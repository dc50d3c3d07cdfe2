package server

import (
	"net/http"
	"strings"
)

type updateAPIKeysRequest struct {
	Groq   string `json:"groq"`
	Gemini string `json:"gemini"`
}

func (s *Server) handleAdminGetAPIKeys(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"keys":   s.app.MaskedAPIKeys(),
	})
}

func (s *Server) handleAdminUpdateAPIKeys(w http.ResponseWriter, r *http.Request) {
	var req updateAPIKeysRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	updated, err := s.app.UpdateAPIKeys(map[string]string{
		"groq":   req.Groq,
		"gemini": req.Gemini,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Updated: " + strings.Join(updated, ", "),
		"updated": updated,
	})
}
