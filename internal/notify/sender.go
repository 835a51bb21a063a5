package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/staffdesk/staffdesk-backend/pkg/logger"
)

// Message is a single notification to deliver. Delivery is
// at-least-once, best-effort; there is no retry queue.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender delivers a notification message to its channel.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// WebhookSender delivers messages by POSTing JSON to a configured
// endpoint (e.g. a mail relay or chat bridge).
type WebhookSender struct {
	url    string
	client *http.Client
}

func NewWebhookSender(url string, timeout time.Duration) *WebhookSender {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookSender{url: url, client: &http.Client{Timeout: timeout}}
}

func (s *WebhookSender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}

// LogSender is the development fallback: messages go to the log only.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	logger.Infof("notification to=%s subject=%q body=%q", msg.To, msg.Subject, msg.Body)
	return nil
}
