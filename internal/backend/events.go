package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"
)

// Event is the current weekly event.
type Event struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Theme    string `json:"theme,omitempty"`
	EndsAt   string `json:"endsAt,omitempty"`
	Entrants int    `json:"entrants"`
}

// EventUserStatus is the caller's standing in the current event.
type EventUserStatus struct {
	Entered bool `json:"entered"`
	Rank    int  `json:"rank,omitempty"`
	Score   int  `json:"score,omitempty"`
}

// LeaderboardEntry is one row of an event leaderboard.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"userId"`
	Nickname string `json:"nickname,omitempty"`
	Score    int    `json:"score"`
}

// EventBundle is everything the events screen needs in one shot.
type EventBundle struct {
	Event       *Event
	UserStatus  *EventUserStatus
	Leaderboard []LeaderboardEntry
}

// GetCurrentEvent fetches the active weekly event.
func (c *Client) GetCurrentEvent(ctx context.Context) (*Event, error) {
	var out Event
	if err := c.do(ctx, http.MethodGet, "/api/event/current", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetEventUserStatus fetches the user's standing in the current event.
func (c *Client) GetEventUserStatus(ctx context.Context, userID string) (*EventUserStatus, error) {
	var out EventUserStatus
	path := "/api/event/user-status?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetEventLeaderboard fetches the current event leaderboard.
func (c *Client) GetEventLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	var out struct {
		Entries []LeaderboardEntry `json:"entries"`
	}
	path := "/api/event/leaderboard"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// GetEventBundle fetches event, user status and leaderboard concurrently.
// Any single failure fails the bundle; partial rendering is the caller's
// decision to make with individual calls.
func (c *Client) GetEventBundle(ctx context.Context, userID string, leaderboardLimit int) (*EventBundle, error) {
	var bundle EventBundle
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		event, err := c.GetCurrentEvent(ctx)
		bundle.Event = event
		return err
	})
	g.Go(func() error {
		status, err := c.GetEventUserStatus(ctx, userID)
		bundle.UserStatus = status
		return err
	})
	g.Go(func() error {
		entries, err := c.GetEventLeaderboard(ctx, leaderboardLimit)
		bundle.Leaderboard = entries
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &bundle, nil
}
