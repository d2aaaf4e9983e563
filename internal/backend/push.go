package backend

import (
	"context"
	"net/http"
)

// PushSubscription is a standard Web Push subscription payload.
type PushSubscription struct {
	UserID   string `json:"userId"`
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// GetVAPIDPublicKey fetches the server's VAPID public key.
func (c *Client) GetVAPIDPublicKey(ctx context.Context) (string, error) {
	var out struct {
		PublicKey string `json:"publicKey"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/push/vapid-public-key", nil, &out); err != nil {
		return "", err
	}
	return out.PublicKey, nil
}

// SubscribePush registers a push subscription with the backend.
func (c *Client) SubscribePush(ctx context.Context, sub *PushSubscription) error {
	return c.do(ctx, http.MethodPost, "/api/push/subscribe", sub, nil)
}

// UnsubscribePush removes a push subscription by endpoint.
func (c *Client) UnsubscribePush(ctx context.Context, userID, endpoint string) error {
	body := map[string]string{"userId": userID, "endpoint": endpoint}
	return c.do(ctx, http.MethodDelete, "/api/push/unsubscribe", body, nil)
}
