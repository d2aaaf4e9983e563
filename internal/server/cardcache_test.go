package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fitrate/fitrate/internal/sharecard"
)

func TestCardCache_PutGet(t *testing.T) {
	c := newCardCache(time.Minute)
	defer c.Stop()

	id := uuid.New()
	card := &sharecard.Card{PNG: []byte("png"), FileName: "fitrate-90-feed.png"}
	expiresAt := c.Put(id, card)
	assert.True(t, expiresAt.After(time.Now()))

	got, ok := c.Get(id)
	assert.True(t, ok)
	assert.Equal(t, card, got)
}

func TestCardCache_GetMissing(t *testing.T) {
	c := newCardCache(time.Minute)
	defer c.Stop()

	_, ok := c.Get(uuid.New())
	assert.False(t, ok)
}

func TestCardCache_Expiry(t *testing.T) {
	c := newCardCache(10 * time.Millisecond)
	defer c.Stop()

	id := uuid.New()
	c.Put(id, &sharecard.Card{PNG: []byte("png")})

	time.Sleep(20 * time.Millisecond)
	_, ok := c.Get(id)
	assert.False(t, ok)
}

func TestCardCache_StopIdempotent(t *testing.T) {
	c := newCardCache(time.Minute)
	c.Stop()
	c.Stop()
}
