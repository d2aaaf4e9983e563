// Package arena runs the client side of matchmaking and battle status as
// explicit, cancellable polling tasks. Each task owns its timers, stops
// them on every exit path, and withdraws its queue ticket on the way out
// unless a match already consumed it.
package arena

import (
	"context"
	"time"

	"github.com/fitrate/fitrate/internal/backend"
)

// Queue timing, mirroring the frontend's intervals.
const (
	DefaultPollInterval = 2 * time.Second
	DefaultQueueTimeout = 60 * time.Second
	leaveTimeout        = 5 * time.Second
)

// ErrNoOpponents indicates the queue timed out without producing a match.
type ErrNoOpponents struct {
	Waited time.Duration
}

func (e *ErrNoOpponents) Error() string {
	return "no opponents found in the arena queue"
}

// Match is a successful matchmaking result.
type Match struct {
	BattleID string
	Opponent string
}

// Queue is one matchmaking session against the backend.
type Queue struct {
	client       *backend.Client
	pollInterval time.Duration
	timeout      time.Duration
}

// NewQueue creates a matchmaking queue with the standard intervals. Zero
// durations select the defaults.
func NewQueue(client *backend.Client, pollInterval, timeout time.Duration) *Queue {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if timeout <= 0 {
		timeout = DefaultQueueTimeout
	}
	return &Queue{client: client, pollInterval: pollInterval, timeout: timeout}
}

// Run joins the queue and polls until matched, timed out or cancelled.
// The ticket is always withdrawn before returning unless a match was made;
// the withdrawal uses its own short deadline so cancellation cannot strand
// a ticket in the queue.
func (q *Queue) Run(ctx context.Context, userID string) (*Match, error) {
	ticket, err := q.client.JoinArena(ctx, userID)
	if err != nil {
		return nil, err
	}

	matched := false
	defer func() {
		if matched {
			return
		}
		leaveCtx, cancel := context.WithTimeout(context.Background(), leaveTimeout)
		defer cancel()
		_ = q.client.LeaveArena(leaveCtx, ticket.TicketID)
	}()

	ticker := time.NewTicker(q.pollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(q.timeout)
	defer deadline.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, &ErrNoOpponents{Waited: time.Since(start)}
		case <-ticker.C:
			status, err := q.client.PollArena(ctx, ticket.TicketID)
			if err != nil {
				return nil, err
			}
			if status.Matched {
				matched = true
				return &Match{BattleID: status.BattleID, Opponent: status.Opponent}, nil
			}
		}
	}
}
