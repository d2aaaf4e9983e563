// Package scanlimit tracks daily scan quotas on top of the client-state
// store: a fixed free allowance per calendar day, purchased extra scans,
// and unlimited scans for Pro users.
package scanlimit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fitrate/fitrate/internal/store"
)

// DefaultFreePerDay is the free scan allowance per calendar day.
const DefaultFreePerDay = 3

// Unlimited is returned as the remaining count for Pro users.
const Unlimited = -1

// ErrNoScans indicates the user has exhausted today's free scans and any
// purchased extras.
type ErrNoScans struct{}

func (e *ErrNoScans) Error() string {
	return "no scans remaining today"
}

// dailyRecord mirrors the frontend's {date, count} localStorage blob.
type dailyRecord struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Limiter enforces scan quotas for one user scope.
type Limiter struct {
	store      store.Store
	userID     string
	freePerDay int
	now        func() time.Time
}

// New creates a limiter backed by the given store. userID may be empty for
// the single-user CLI scope.
func New(s store.Store, userID string, freePerDay int) *Limiter {
	if freePerDay <= 0 {
		freePerDay = DefaultFreePerDay
	}
	return &Limiter{store: s, userID: userID, freePerDay: freePerDay, now: time.Now}
}

// Remaining reports how many scans the user can still run today. Pro users
// always get Unlimited.
func (l *Limiter) Remaining(ctx context.Context, isPro bool) (int, error) {
	if isPro {
		return Unlimited, nil
	}
	used, err := l.usedToday(ctx)
	if err != nil {
		return 0, err
	}
	extra, err := l.extraScans(ctx)
	if err != nil {
		return 0, err
	}
	remaining := l.freePerDay - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining + extra, nil
}

// Consume records one scan. Free daily scans are spent before purchased
// extras. Returns the remaining count or ErrNoScans.
func (l *Limiter) Consume(ctx context.Context, isPro bool) (int, error) {
	if isPro {
		return Unlimited, nil
	}

	used, err := l.usedToday(ctx)
	if err != nil {
		return 0, err
	}
	if used < l.freePerDay {
		if err := l.setUsedToday(ctx, used+1); err != nil {
			return 0, err
		}
		return l.Remaining(ctx, false)
	}

	extra, err := l.extraScans(ctx)
	if err != nil {
		return 0, err
	}
	if extra <= 0 {
		return 0, &ErrNoScans{}
	}
	if err := l.setExtraScans(ctx, extra-1); err != nil {
		return 0, err
	}
	return l.Remaining(ctx, false)
}

// GrantExtra adds purchased scans to the balance.
func (l *Limiter) GrantExtra(ctx context.Context, n int) error {
	if n <= 0 {
		return fmt.Errorf("extra scan grant must be positive, got %d", n)
	}
	extra, err := l.extraScans(ctx)
	if err != nil {
		return err
	}
	return l.setExtraScans(ctx, extra+n)
}

// usedToday reads the daily counter, treating a stale date as zero.
// Rollover happens lazily on the first read of a new day.
func (l *Limiter) usedToday(ctx context.Context) (int, error) {
	raw, ok, err := l.store.Get(ctx, l.key(store.KeyDailyScans))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	var rec dailyRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		// Corrupt counter resets rather than locking the user out.
		return 0, nil
	}
	if rec.Date != l.today() {
		return 0, nil
	}
	return rec.Count, nil
}

func (l *Limiter) setUsedToday(ctx context.Context, count int) error {
	raw, err := json.Marshal(dailyRecord{Date: l.today(), Count: count})
	if err != nil {
		return fmt.Errorf("failed to marshal scan counter: %w", err)
	}
	return l.store.Set(ctx, l.key(store.KeyDailyScans), string(raw))
}

func (l *Limiter) extraScans(ctx context.Context) (int, error) {
	raw, ok, err := l.store.Get(ctx, l.key(store.KeyExtraScans))
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, nil
	}
	return n, nil
}

func (l *Limiter) setExtraScans(ctx context.Context, n int) error {
	return l.store.Set(ctx, l.key(store.KeyExtraScans), strconv.Itoa(n))
}

func (l *Limiter) key(k string) string {
	return store.Scoped(l.userID, k)
}

func (l *Limiter) today() string {
	return l.now().Format("2006-01-02")
}
