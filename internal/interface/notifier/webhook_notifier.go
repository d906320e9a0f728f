package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"attendance-service/internal/domain/repository"
	"attendance-service/pkg/logger"
)

// WebhookNotifier posts lifecycle announcements to a Discord-compatible
// webhook. An empty URL disables it.
type WebhookNotifier struct {
	logger logger.Logger
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a new webhook notifier
func NewWebhookNotifier(url string, logger logger.Logger) repository.NotificationRepository {
	return &WebhookNotifier{
		logger: logger,
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type webhookMessage struct {
	Content string `json:"content"`
}

// Send posts the content to the webhook
func (n *WebhookNotifier) Send(ctx context.Context, content string) error {
	if n.url == "" {
		n.logger.Debug("Webhook URL not configured, skipping notification")
		return nil
	}

	jsonData, err := json.Marshal(webhookMessage{Content: content})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", n.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	n.logger.Debug("Notification sent", "status", resp.StatusCode)
	return nil
}
