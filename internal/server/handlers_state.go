package server

import (
	"net/http"

	"github.com/fitrate/fitrate/internal/store"
)

// StateResponse is one client-state key-value pair.
type StateResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// handleGetState reads one client-state key for a user.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	userID, key := r.PathValue("user_id"), r.PathValue("key")
	if userID == "" || key == "" {
		s.errorResponse(w, http.StatusBadRequest, "user_id and key are required")
		return
	}

	value, ok, err := s.store.Get(r.Context(), store.Scoped(userID, key))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return
	}
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Key not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, StateResponse{Key: key, Value: value})
}

// handlePutState writes one client-state key. The body is the raw value;
// last write wins, matching localStorage semantics.
func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	userID, key := r.PathValue("user_id"), r.PathValue("key")
	if userID == "" || key == "" {
		s.errorResponse(w, http.StatusBadRequest, "user_id and key are required")
		return
	}

	body := http.MaxBytesReader(w, r.Body, 64<<10)
	value, err := readAll(body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := s.store.Set(r.Context(), store.Scoped(userID, key), string(value)); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, StateResponse{Key: key, Value: string(value)})
}

// handleDeleteState removes one client-state key.
func (s *Server) handleDeleteState(w http.ResponseWriter, r *http.Request) {
	userID, key := r.PathValue("user_id"), r.PathValue("key")
	if userID == "" || key == "" {
		s.errorResponse(w, http.StatusBadRequest, "user_id and key are required")
		return
	}

	if err := s.store.Delete(r.Context(), store.Scoped(userID, key)); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
