// Package notify forwards accepted submissions to the configured downstream
// channels. Delivery is best-effort: failures are logged and reported back
// as a DispatchResult, never as a request error.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-studio-backend/config"
	"go-studio-backend/internal/domain"
	"go-studio-backend/pkg/email"
	"go-studio-backend/pkg/logger"
)

// webhookTimeout bounds the outbound call so a slow channel cannot hold the
// request open indefinitely
const webhookTimeout = 10 * time.Second

// notificationPayload is the JSON body posted to the webhook
type notificationPayload struct {
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	SubmittedAt string `json:"submitted_at"`
	ClientIP    string `json:"client_ip"`
}

// Dispatcher implements domain.NotificationDispatcher against an HTTP
// webhook plus an SMTP acknowledgment to the submitter.
type Dispatcher struct {
	webhookURL string
	httpClient *http.Client
	email      *email.EmailService
	now        func() time.Time
}

// NewDispatcher creates a dispatcher. An empty webhook URL is valid
// configuration and means "log only".
func NewDispatcher(cfg *config.Config, emailService *email.EmailService) *Dispatcher {
	return &Dispatcher{
		webhookURL: cfg.WebhookURL,
		httpClient: &http.Client{Timeout: webhookTimeout},
		email:      emailService,
		now:        time.Now,
	}
}

// Dispatch forwards the submission. Network errors, non-2xx statuses and
// acknowledgment failures are swallowed here; the result is for logging.
func (d *Dispatcher) Dispatch(ctx context.Context, sub *domain.Submission, clientIP string) domain.DispatchResult {
	payload := d.buildPayload(sub, clientIP)

	result := d.deliver(ctx, payload)

	// Acknowledgment auto-reply. Its failure is independent of webhook
	// delivery and likewise never reaches the submitter.
	if d.email != nil && d.email.IsConfigured() {
		ack := email.AcknowledgmentData{FirstName: sub.FirstName, Service: sub.Service}
		if err := d.email.SendAcknowledgment(sub.Email, ack); err != nil {
			logger.Log.Warn("acknowledgment email failed", "error", err, "email", sub.Email)
		}
	}

	return result
}

func (d *Dispatcher) buildPayload(sub *domain.Submission, clientIP string) notificationPayload {
	body := fmt.Sprintf(
		"New project inquiry\n\n"+
			"Name: %s\n"+
			"Email: %s\n"+
			"Phone: %s\n"+
			"Company: %s\n"+
			"Preferred contact: %s\n\n"+
			"Service: %s\n"+
			"Timeline: %s\n"+
			"Project size: %s\n\n"+
			"Message:\n%s\n",
		sub.FullName(), sub.Email, orDash(sub.Phone), orDash(sub.Company),
		orDash(sub.ContactMethod), sub.Service, orDash(sub.Timeline),
		orDash(sub.ProjectSize), sub.Message,
	)
	if sub.Attachment != nil {
		body += fmt.Sprintf("\nAttachment: %s (%d bytes, %s)\n",
			sub.Attachment.Filename, sub.Attachment.Size, sub.Attachment.ContentType)
	}

	return notificationPayload{
		Subject:     fmt.Sprintf("New project inquiry from %s", sub.FullName()),
		Body:        body,
		SubmittedAt: d.now().UTC().Format(time.RFC3339),
		ClientIP:    clientIP,
	}
}

// deliver posts the payload to the webhook, or records it locally when no
// webhook is configured
func (d *Dispatcher) deliver(ctx context.Context, payload notificationPayload) domain.DispatchResult {
	if d.webhookURL == "" {
		logger.Log.Info("webhook not configured, recording submission locally",
			"subject", payload.Subject,
			"client_ip", payload.ClientIP,
			"body", payload.Body,
		)
		return domain.DispatchResult{Delivered: true, Channel: "log"}
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return domain.DispatchResult{Channel: "webhook", Err: fmt.Errorf("failed to encode payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(buf))
	if err != nil {
		return domain.DispatchResult{Channel: "webhook", Err: fmt.Errorf("failed to build webhook request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return domain.DispatchResult{Channel: "webhook", Err: fmt.Errorf("webhook call failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.DispatchResult{Channel: "webhook", Err: fmt.Errorf("webhook returned status %d", resp.StatusCode)}
	}

	return domain.DispatchResult{Delivered: true, Channel: "webhook"}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
