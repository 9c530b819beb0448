// Package notify delivers operator notifications through the LINE
// Messaging API. The push endpoint is a single authenticated JSON POST, so
// the client speaks to it directly.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const linePushURL = "https://api.line.me/v2/bot/message/push"

// LineClient pushes text messages to a fixed LINE group via a channel
// access token.
type LineClient struct {
	token   string
	groupID string
	client  *http.Client
}

// NewLineClient creates a LINE push client. token and groupID may be empty;
// IsConfigured reports whether sending is possible.
func NewLineClient(token, groupID string) *LineClient {
	return &LineClient{
		token:   token,
		groupID: groupID,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// IsConfigured reports whether both the channel token and group id are set.
func (l *LineClient) IsConfigured() bool {
	return l.token != "" && l.groupID != ""
}

type pushPayload struct {
	To       string        `json:"to"`
	Messages []pushMessage `json:"messages"`
}

type pushMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PushText sends one text message to the configured group.
func (l *LineClient) PushText(ctx context.Context, text string) error {
	if !l.IsConfigured() {
		return fmt.Errorf("LINE_CHANNEL_ACCESS_TOKEN and LINE_GROUP_ID must be set")
	}

	body, err := json.Marshal(pushPayload{
		To:       l.groupID,
		Messages: []pushMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("marshal LINE payload failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, linePushURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build LINE request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.token)

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("LINE push failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("LINE API error (%d): %s", resp.StatusCode, string(detail))
	}
	return nil
}
