// Package clients holds outbound HTTP clients for collaborating services.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"wishlist-service/internal/models"
)

// PushClient delivers push notifications through the external push gateway.
// Registration of device tokens is the identity layer's concern; this client
// only sends to tokens already stored on the profile.
type PushClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPushClient creates a push client from PUSH_SERVICE_URL.
func NewPushClient() *PushClient {
	baseURL := os.Getenv("PUSH_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://push-service:8085"
	}
	return &PushClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type pushMessage struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NotifyFriendRequest tells the addressee a request arrived.
func (c *PushClient) NotifyFriendRequest(ctx context.Context, to *models.User, from *models.User) error {
	return c.send(ctx, to, "New friend request", fmt.Sprintf("%s wants to be your friend", from.DisplayName))
}

// NotifyRequestAccepted tells the requester their request was accepted.
func (c *PushClient) NotifyRequestAccepted(ctx context.Context, to *models.User, by *models.User) error {
	return c.send(ctx, to, "Friend request accepted", fmt.Sprintf("%s accepted your friend request", by.DisplayName))
}

func (c *PushClient) send(ctx context.Context, to *models.User, title, body string) error {
	if to.PushToken == "" {
		return nil
	}

	payload, err := json.Marshal(pushMessage{Token: to.PushToken, Title: title, Body: body})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/push/send", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}
	return nil
}
