package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/solbo-lab/solbo/internal/logger"
)

const webhookTimeout = 10 * time.Second

// WebhookNotifier POSTs notifications as JSON to a configured URL, covering
// push services with a generic inbound-webhook surface.
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger *logger.Logger
}

type webhookPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewWebhookNotifier creates a webhook-backed notifier.
func NewWebhookNotifier(url string, log *logger.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: webhookTimeout},
		logger: log,
	}
}

// Send implements Notifier. Failures are logged and swallowed.
func (n *WebhookNotifier) Send(title, body string) {
	payload, err := json.Marshal(webhookPayload{Title: title, Body: body})
	if err != nil {
		n.logger.Error("Failed to encode notification", zap.Error(err))

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), webhookTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		n.logger.Error("Failed to build notification request", zap.Error(err))

		return
	}

	request.Header.Set("Content-Type", "application/json")

	response, err := n.client.Do(request)
	if err != nil {
		n.logger.Error("Failed to deliver notification", zap.String("url", n.url), zap.Error(err))

		return
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		n.logger.Error("Notification rejected",
			zap.String("url", n.url),
			zap.Int("status", response.StatusCode),
		)
	}
}
