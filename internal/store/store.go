// Package store persists FitRate client state as string key-value pairs,
// the server-side stand-in for the frontend's localStorage. Values are raw
// strings or JSON blobs; writes are last-write-wins with no cross-key
// transactions.
package store

import "context"

// Store is the key-value interface every backend implements.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes a value, overwriting any previous one.
	Set(ctx context.Context, key, value string) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying resources.
	Close() error
}

// Fixed key names carried over from the frontend's localStorage schema.
const (
	KeyUserID          = "fitrate_user_id"
	KeyPro             = "fitrate_pro"
	KeyProEmail        = "fitrate_pro_email"
	KeyDailyScans      = "fitrate_daily_scans"
	KeyExtraScans      = "fitrate_extra_scans"
	KeyPushDismissed   = "fitrate_push_dismissed"
	KeyWeeklyEntryUsed = "fitrate_weekly_entry_used"
	KeyFirstPurchase   = "fitrate_first_purchase"
)

// ShowProfileKey returns the key holding the nickname/emoji blob for one
// fashion show.
func ShowProfileKey(showID string) string {
	return "fitrate_show_" + showID
}

// Scoped prefixes a key with a user id for multi-user server deployments.
// The single-user CLI uses the bare keys, matching one browser profile.
func Scoped(userID, key string) string {
	if userID == "" {
		return key
	}
	return userID + ":" + key
}
