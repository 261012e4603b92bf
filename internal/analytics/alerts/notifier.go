// internal/analytics/alerts/notifier.go
package alerts

import (
	"context"
	"fmt"
	"strings"

	"smarthome-crm-analytics/internal/common/config"
	"smarthome-crm-analytics/internal/common/logger"
	"smarthome-crm-analytics/internal/models"
)

// SNSPublisher publishes an alert message to a topic.
type SNSPublisher interface {
	PublishAlert(ctx context.Context, topicARN, subject, message string) error
}

// EmailSender sends a plain-text alert email.
type EmailSender interface {
	SendPlainEmail(ctx context.Context, from, to, subject, body string) error
}

// WebhookPoster posts the alert payload to a configured URL.
type WebhookPoster interface {
	PostJSON(ctx context.Context, url string, payload interface{}) error
}

// Notifier fans critical alerts out to the enabled channels. Every channel is
// strictly best-effort: delivery failures are logged and swallowed.
type Notifier struct {
	cfg     config.NotificationConfig
	sns     SNSPublisher
	email   EmailSender
	webhook WebhookPoster
	logger  logger.Logger
}

func NewNotifier(cfg config.NotificationConfig, sns SNSPublisher, email EmailSender, webhook WebhookPoster, log logger.Logger) *Notifier {
	return &Notifier{
		cfg:     cfg,
		sns:     sns,
		email:   email,
		webhook: webhook,
		logger:  log.WithFields(map[string]interface{}{"component": "alert-notifier"}),
	}
}

// Notify delivers critical alerts to all enabled channels.
func (n *Notifier) Notify(ctx context.Context, timeframe string, alerts []models.Alert) {
	critical := filterCritical(alerts)
	if len(critical) == 0 {
		return
	}

	subject := fmt.Sprintf("[CRITICAL] %d analytics alert(s) for %s", len(critical), timeframe)
	body := formatBody(critical)

	if n.cfg.SNS.Enabled && n.sns != nil {
		if err := n.sns.PublishAlert(ctx, n.cfg.SNS.TopicARN, subject, body); err != nil {
			n.logger.Warn("sns alert delivery failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if n.cfg.Email.Enabled && n.email != nil {
		if err := n.email.SendPlainEmail(ctx, n.cfg.Email.FromEmail, n.cfg.Email.ToEmail, subject, body); err != nil {
			n.logger.Warn("email alert delivery failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if n.cfg.Webhook.Enabled && n.webhook != nil {
		payload := map[string]interface{}{
			"timeframe": timeframe,
			"alerts":    critical,
		}
		if err := n.webhook.PostJSON(ctx, n.cfg.Webhook.URL, payload); err != nil {
			n.logger.Warn("webhook alert delivery failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func filterCritical(alerts []models.Alert) []models.Alert {
	critical := make([]models.Alert, 0, len(alerts))
	for _, a := range alerts {
		if a.Type == models.AlertCritical {
			critical = append(critical, a)
		}
	}
	return critical
}

func formatBody(alerts []models.Alert) string {
	var sb strings.Builder
	for _, a := range alerts {
		sb.WriteString(fmt.Sprintf("- [%s] %s\n", a.Category, a.Message))
	}
	return sb.String()
}
