package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Minute)
	cardID := uuid.New()

	token, err := svc.Generate(cardID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, cardID, got)
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := NewTokenService([]byte("secret-a"), time.Minute).Generate(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenService([]byte("secret-b"), time.Minute).Validate(token)
	require.Error(t, err)

	var invalid *ErrInvalidToken
	assert.ErrorAs(t, err, &invalid)
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), -time.Minute)
	token, err := svc.Generate(uuid.New())
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Minute)
	_, err := svc.Validate("not.a.jwt")
	assert.Error(t, err)
}

func TestTokenService_RejectsUnsignedAlg(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"), time.Minute)
	// alg=none token with arbitrary claims.
	_, err := svc.Validate("eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJjYXJkX2lkIjoiMDAwMDAwMDAtMDAwMC0wMDAwLTAwMDAtMDAwMDAwMDAwMDAwIn0.")
	assert.Error(t, err)
}
