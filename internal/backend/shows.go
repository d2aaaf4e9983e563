package backend

import (
	"context"
	"net/http"
)

// Show is a multi-participant, time-boxed fashion show.
type Show struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	InviteURL string `json:"inviteUrl,omitempty"`
	EndsAt    string `json:"endsAt,omitempty"`
}

// ShowEntry is one participant row on a show scoreboard.
type ShowEntry struct {
	UserID    string `json:"userId"`
	Nickname  string `json:"nickname"`
	Emoji     string `json:"emoji,omitempty"`
	Score     int    `json:"score"`
	Reactions int    `json:"reactions"`
}

// CreateShow opens a new show hosted by the user.
func (c *Client) CreateShow(ctx context.Context, hostUserID, name string) (*Show, error) {
	var out Show
	body := map[string]string{"userId": hostUserID, "name": name}
	if err := c.do(ctx, http.MethodPost, "/api/show/create", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// JoinShow enters a show with the chosen nickname and emoji.
func (c *Client) JoinShow(ctx context.Context, showID, userID, nickname, emoji string) error {
	body := map[string]string{"userId": userID, "nickname": nickname, "emoji": emoji}
	return c.do(ctx, http.MethodPost, "/api/show/"+showID+"/join", body, nil)
}

// ReactToShow sends an emoji reaction to another participant's entry.
func (c *Client) ReactToShow(ctx context.Context, showID, userID, targetUserID, emoji string) error {
	body := map[string]string{"userId": userID, "targetUserId": targetUserID, "emoji": emoji}
	return c.do(ctx, http.MethodPost, "/api/show/"+showID+"/react", body, nil)
}

// GetShowScoreboard fetches the live scoreboard for a show.
func (c *Client) GetShowScoreboard(ctx context.Context, showID string) ([]ShowEntry, error) {
	var out struct {
		Entries []ShowEntry `json:"entries"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/show/"+showID+"/scoreboard", nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}
