package backend

import (
	"context"
	"net/http"
)

// Battle is a 1v1 outfit comparison session. Scores and winner are filled
// in by the backend once both sides have submitted.
type Battle struct {
	ID             string `json:"id"`
	Status         string `json:"status"` // waiting, active, complete
	CreatorScore   *int   `json:"creatorScore,omitempty"`
	OpponentScore  *int   `json:"opponentScore,omitempty"`
	WinnerUserID   string `json:"winnerUserId,omitempty"`
	CreatorUserID  string `json:"creatorUserId"`
	OpponentUserID string `json:"opponentUserId,omitempty"`
}

// Battle statuses reported by the backend.
const (
	BattleWaiting  = "waiting"
	BattleActive   = "active"
	BattleComplete = "complete"
)

// GetBattle fetches a battle by id.
func (c *Client) GetBattle(ctx context.Context, id string) (*Battle, error) {
	var out Battle
	if err := c.do(ctx, http.MethodGet, "/api/battle/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBattle opens a new invite-link battle for the user.
func (c *Client) CreateBattle(ctx context.Context, userID string) (*Battle, error) {
	var out Battle
	body := map[string]string{"userId": userID}
	if err := c.do(ctx, http.MethodPost, "/api/battle", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ArenaTicket identifies a position in the matchmaking queue.
type ArenaTicket struct {
	TicketID string `json:"ticketId"`
}

// ArenaStatus is one matchmaking poll response.
type ArenaStatus struct {
	Matched  bool   `json:"matched"`
	BattleID string `json:"battleId,omitempty"`
	Opponent string `json:"opponent,omitempty"`
}

// ArenaStats summarizes queue liveness for the lobby screen.
type ArenaStats struct {
	PlayersOnline int `json:"playersOnline"`
	ActiveBattles int `json:"activeBattles"`
}

// JoinArena enters the global matchmaking queue.
func (c *Client) JoinArena(ctx context.Context, userID string) (*ArenaTicket, error) {
	var out ArenaTicket
	body := map[string]string{"userId": userID}
	if err := c.do(ctx, http.MethodPost, "/api/arena/join", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PollArena checks whether the ticket has been matched yet.
func (c *Client) PollArena(ctx context.Context, ticketID string) (*ArenaStatus, error) {
	var out ArenaStatus
	body := map[string]string{"ticketId": ticketID}
	if err := c.do(ctx, http.MethodPost, "/api/arena/poll", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LeaveArena removes the ticket from the queue. Called on every exit path
// so abandoned tickets do not linger in matchmaking.
func (c *Client) LeaveArena(ctx context.Context, ticketID string) error {
	body := map[string]string{"ticketId": ticketID}
	return c.do(ctx, http.MethodPost, "/api/arena/leave", body, nil)
}

// GetArenaStats fetches queue liveness numbers.
func (c *Client) GetArenaStats(ctx context.Context) (*ArenaStats, error) {
	var out ArenaStats
	if err := c.do(ctx, http.MethodGet, "/api/arena/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
