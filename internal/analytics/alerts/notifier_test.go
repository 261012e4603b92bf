// internal/analytics/alerts/notifier_test.go
package alerts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"smarthome-crm-analytics/internal/common/config"
	"smarthome-crm-analytics/internal/common/logger"
	"smarthome-crm-analytics/internal/models"
)

type fakeSNS struct {
	published int
	err       error
}

func (f *fakeSNS) PublishAlert(_ context.Context, _, _, _ string) error {
	f.published++
	return f.err
}

type fakeWebhook struct {
	posted int
}

func (f *fakeWebhook) PostJSON(_ context.Context, _ string, _ interface{}) error {
	f.posted++
	return nil
}

func notificationConfig(snsEnabled, webhookEnabled bool) config.NotificationConfig {
	var cfg config.NotificationConfig
	cfg.SNS.Enabled = snsEnabled
	cfg.SNS.TopicARN = "arn:aws:sns:us-east-1:000000000000:analytics-alerts"
	cfg.Webhook.Enabled = webhookEnabled
	cfg.Webhook.URL = "https://ops.example.com/hooks/analytics"
	return cfg
}

func criticalAlert() models.Alert {
	return models.Alert{Type: models.AlertCritical, Category: "ai_performance", Message: "error rate high", Value: 6}
}

func TestNotify(t *testing.T) {
	t.Run("delivers critical alerts to enabled channels", func(t *testing.T) {
		sns := &fakeSNS{}
		webhook := &fakeWebhook{}
		n := NewNotifier(notificationConfig(true, true), sns, nil, webhook, logger.NewNoOpLogger())

		n.Notify(context.Background(), "last_30_days", []models.Alert{criticalAlert()})

		assert.Equal(t, 1, sns.published)
		assert.Equal(t, 1, webhook.posted)
	})

	t.Run("warnings alone trigger nothing", func(t *testing.T) {
		sns := &fakeSNS{}
		n := NewNotifier(notificationConfig(true, false), sns, nil, nil, logger.NewNoOpLogger())

		n.Notify(context.Background(), "last_30_days", []models.Alert{
			{Type: models.AlertWarning, Category: "revenue"},
		})

		assert.Zero(t, sns.published)
	})

	t.Run("delivery failure is swallowed", func(t *testing.T) {
		sns := &fakeSNS{err: errors.New("topic not found")}
		webhook := &fakeWebhook{}
		n := NewNotifier(notificationConfig(true, true), sns, nil, webhook, logger.NewNoOpLogger())

		n.Notify(context.Background(), "last_7_days", []models.Alert{criticalAlert()})

		// The webhook still fires even though SNS failed.
		assert.Equal(t, 1, webhook.posted)
	})

	t.Run("disabled channels are skipped", func(t *testing.T) {
		sns := &fakeSNS{}
		n := NewNotifier(notificationConfig(false, false), sns, nil, nil, logger.NewNoOpLogger())

		n.Notify(context.Background(), "last_30_days", []models.Alert{criticalAlert()})

		assert.Zero(t, sns.published)
	})
}
