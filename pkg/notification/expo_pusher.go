package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pantry-guardian/backend/internal/utils"
)

// Pusher delivers one push notification to a device token.
type Pusher interface {
	Push(ctx context.Context, token, title, body string) error
}

// ExpoPusher sends notifications through the Expo push gateway.
type ExpoPusher struct {
	PushURL string
	Client  *http.Client
}

func NewExpoPusher() *ExpoPusher {
	return &ExpoPusher{
		PushURL: utils.GetConfig("EXPO_PUSH_URL"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *ExpoPusher) Push(ctx context.Context, token, title, body string) error {
	payload, err := json.Marshal(map[string]string{
		"to":    token,
		"title": title,
		"body":  body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.PushURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("expo push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("expo push returned status %s", resp.Status)
	}
	return nil
}
