package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CardClaims are the JWT claims on a card retrieval token.
type CardClaims struct {
	CardID uuid.UUID `json:"card_id"`
	jwt.RegisteredClaims
}

// TokenService signs and validates short-lived card retrieval tokens so a
// rendered card can be fetched by whoever holds the share link, and only
// for as long as the card is cached.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service with an HMAC secret.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Generate signs a retrieval token for a card.
func (s *TokenService) Generate(cardID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &CardClaims{
		CardID: cardID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign card token: %w", err)
	}
	return signed, nil
}

// Validate checks a retrieval token and returns the card id it grants.
func (s *TokenService) Validate(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CardClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, &ErrInvalidToken{}
	}
	claims, ok := token.Claims.(*CardClaims)
	if !ok || claims.CardID == uuid.Nil {
		return uuid.Nil, &ErrInvalidToken{}
	}
	return claims.CardID, nil
}
