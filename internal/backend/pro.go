package backend

import (
	"context"
	"net/http"
)

// ProStatus is the backend's answer to a Pro entitlement check.
type ProStatus struct {
	IsPro bool   `json:"isPro"`
	Email string `json:"email,omitempty"`
}

// CheckPro verifies the Pro entitlement for a user. Email is optional and
// used for cross-device restore matching.
func (c *Client) CheckPro(ctx context.Context, userID, email string) (*ProStatus, error) {
	body := map[string]string{"userId": userID}
	if email != "" {
		body["email"] = email
	}
	var out ProStatus
	if err := c.do(ctx, http.MethodPost, "/api/pro/check", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckoutSession is a hosted payment page created by the backend.
type CheckoutSession struct {
	URL string `json:"url"`
}

// CreateCheckoutSession starts a purchase flow for a product and returns
// the hosted checkout URL to open.
func (c *Client) CreateCheckoutSession(ctx context.Context, product, userID, successURL, cancelURL string) (*CheckoutSession, error) {
	body := map[string]string{
		"product":    product,
		"userId":     userID,
		"successUrl": successURL,
		"cancelUrl":  cancelURL,
	}
	var out CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/api/checkout/create-session", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RestoreResult reports what a purchase restore recovered.
type RestoreResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	RestoredPro   bool   `json:"restoredPro"`
	RestoredScans int    `json:"restoredScans"`
}

// Restore recovers previous purchases for an email on a new device.
func (c *Client) Restore(ctx context.Context, userID, email string) (*RestoreResult, error) {
	var out RestoreResult
	body := map[string]string{"userId": userID, "email": email}
	if err := c.do(ctx, http.MethodPost, "/api/restore", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
