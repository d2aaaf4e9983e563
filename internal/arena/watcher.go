package arena

import (
	"context"
	"time"

	"github.com/fitrate/fitrate/internal/backend"
)

// DefaultWatchInterval is how often battle status is refreshed.
const DefaultWatchInterval = 10 * time.Second

// WatchBattle polls a battle until it completes or the context is
// cancelled. onUpdate fires for every successful poll, including the final
// one; poll failures end the watch rather than retrying, matching the
// single-attempt policy everywhere else.
func WatchBattle(ctx context.Context, client *backend.Client, battleID string, interval time.Duration, onUpdate func(*backend.Battle)) (*backend.Battle, error) {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	poll := func() (*backend.Battle, bool, error) {
		battle, err := client.GetBattle(ctx, battleID)
		if err != nil {
			return nil, false, err
		}
		if onUpdate != nil {
			onUpdate(battle)
		}
		return battle, battle.Status == backend.BattleComplete, nil
	}

	// Immediate first poll so the caller is never staring at stale state
	// for a full interval.
	if battle, done, err := poll(); err != nil || done {
		return battle, err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			battle, done, err := poll()
			if err != nil || done {
				return battle, err
			}
		}
	}
}
