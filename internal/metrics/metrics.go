package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Метки каналов доставки уведомлений
const (
	ChannelTelegram = "telegram"
	ChannelEmail    = "email"
)

// Метки исходов
const (
	OutcomeSent        = "sent"
	OutcomeFailed      = "failed"
	OutcomeDeactivated = "deactivated"

	OutcomeApplied   = "applied"
	OutcomeDuplicate = "duplicate"
	OutcomeUnknown   = "unknown"
	OutcomeError     = "error"
)

// Metrics - счётчики обработки вебхуков и доставки уведомлений
type Metrics struct {
	WebhookEvents *prometheus.CounterVec
	Notifications *prometheus.CounterVec
}

// Создание и регистрация метрик. В тестах передаётся отдельный
// prometheus.NewRegistry, чтобы повторная регистрация не паниковала.
func New(reg prometheus.Registerer) *Metrics {
	webhooks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dessertshop",
		Name:      "payment_webhook_events_total",
		Help:      "Total number of processed payment provider webhook events.",
	}, []string{"event", "outcome"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dessertshop",
		Name:      "notifications_total",
		Help:      "Total number of notification delivery attempts.",
	}, []string{"channel", "outcome"})

	reg.MustRegister(webhooks, notifications)
	return &Metrics{WebhookEvents: webhooks, Notifications: notifications}
}

// IncWebhook - учёт обработанного события провайдера, nil-безопасно
func (m *Metrics) IncWebhook(event string, outcome string) {
	if m == nil {
		return
	}
	m.WebhookEvents.WithLabelValues(event, outcome).Inc()
}

// IncNotification - учёт попытки доставки уведомления, nil-безопасно
func (m *Metrics) IncNotification(channel string, outcome string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(channel, outcome).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
