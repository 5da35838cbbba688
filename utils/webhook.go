package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// NotifyOrderEvent posts an order lifecycle event to the webhook configured
// via ORDER_WEBHOOK_URL. Returns nil when no webhook is configured; callers
// treat failures as best-effort and only log them.
func NotifyOrderEvent(orderID uint, event string, status string) error {
	webhookURL := os.Getenv("ORDER_WEBHOOK_URL")
	if webhookURL == "" {
		return nil
	}

	payload := map[string]any{
		"orderId":    orderID,
		"event":      event,
		"status":     status,
		"occurredAt": time.Now().UTC().Format(time.RFC3339),
	}

	resp, err := resty.New().SetTimeout(10 * time.Second).
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(webhookURL)

	if err != nil {
		return err
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode())
	}

	return nil
}
