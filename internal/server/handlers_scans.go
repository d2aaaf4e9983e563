package server

import (
	"encoding/json"
	"net/http"

	"github.com/fitrate/fitrate/internal/scanlimit"
)

// ScanStatusResponse reports the remaining scans for a user. Remaining is
// -1 for Pro users (unlimited).
type ScanStatusResponse struct {
	UserID    string `json:"user_id"`
	Remaining int    `json:"remaining"`
	Unlimited bool   `json:"unlimited"`
}

// handleGetScans reports the remaining scan quota.
func (s *Server) handleGetScans(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}
	isPro := r.URL.Query().Get("pro") == "true"

	remaining, err := s.limiter(userID).Remaining(r.Context(), isPro)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, ScanStatusResponse{
		UserID:    userID,
		Remaining: remaining,
		Unlimited: remaining == scanlimit.Unlimited,
	})
}

// handleConsumeScan spends one scan and reports the new balance.
func (s *Server) handleConsumeScan(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}
	isPro := r.URL.Query().Get("pro") == "true"

	remaining, err := s.limiter(userID).Consume(r.Context(), isPro)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, ScanStatusResponse{
		UserID:    userID,
		Remaining: remaining,
		Unlimited: remaining == scanlimit.Unlimited,
	})
}

// GrantScansRequest adds purchased scans to a user's balance.
type GrantScansRequest struct {
	Count int `json:"count"`
}

// handleGrantScans credits purchased extra scans.
func (s *Server) handleGrantScans(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var req GrantScansRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if req.Count <= 0 {
		s.errorResponse(w, http.StatusBadRequest, "count must be positive")
		return
	}

	limiter := s.limiter(userID)
	if err := limiter.GrantExtra(r.Context(), req.Count); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return
	}
	remaining, err := limiter.Remaining(r.Context(), false)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Store error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, ScanStatusResponse{UserID: userID, Remaining: remaining})
}
