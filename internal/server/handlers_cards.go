package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fitrate/fitrate/internal/imagefetch"
	"github.com/fitrate/fitrate/internal/schemas"
	"github.com/fitrate/fitrate/internal/sharecard"
	"github.com/fitrate/fitrate/internal/types"
)

// CreateCardResponse describes a freshly rendered card and how to fetch it.
type CreateCardResponse struct {
	CardID    uuid.UUID `json:"card_id"`
	FileName  string    `json:"file_name"`
	Caption   string    `json:"caption"`
	URL       string    `json:"url"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// handleCreateCard renders a share card from a score result and a photo
// source, caches the PNG and returns a short-lived retrieval token.
func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body := http.MaxBytesReader(w, r.Body, 1<<20)
	raw, err := readAll(body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	// Validate the opaque score document before decoding anything.
	var envelope struct {
		Scores json.RawMessage `json:"scores"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if len(envelope.Scores) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "scores is required")
		return
	}
	if err := schemas.ValidateScoreResult(envelope.Scores); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req types.ShareCardRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ImageSource == "" {
		s.errorResponse(w, http.StatusBadRequest, "imageSource is required")
		return
	}
	// The server only loads remote photos; local paths are a CLI affair.
	if !strings.HasPrefix(req.ImageSource, "http://") && !strings.HasPrefix(req.ImageSource, "https://") {
		s.errorResponse(w, http.StatusBadRequest, "imageSource must be an http(s) URL")
		return
	}

	photo, err := imagefetch.Load(ctx, req.ImageSource, nil)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	card, err := sharecard.Generate(ctx, &req, photo)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	cardID := uuid.New()
	expiresAt := s.cards.Put(cardID, card)
	token, err := s.tokens.Generate(cardID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, CreateCardResponse{
		CardID:    cardID,
		FileName:  card.FileName,
		Caption:   card.Caption,
		URL:       card.URL,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// handleGetCard serves a cached card PNG. The retrieval token travels as a
// query parameter so share links stay plain URLs.
func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid card ID")
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		s.errorResponse(w, http.StatusUnauthorized, "token query parameter is required")
		return
	}
	grantedID, err := s.tokens.Validate(token)
	if err != nil || grantedID != cardID {
		s.errorResponse(w, HTTPStatus(&ErrInvalidToken{}), (&ErrInvalidToken{}).Error())
		return
	}

	card, ok := s.cards.Get(cardID)
	if !ok {
		notFound := &ErrCardNotFound{CardID: cardID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", card.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(card.PNG)
}
