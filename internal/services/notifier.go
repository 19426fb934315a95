package services

import (
	"context"

	"github.com/denmor86/dessert-shop/internal/client"
	"github.com/denmor86/dessert-shop/internal/config"
	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/metrics"
)

// EmailNotification - письмо клиенту
type EmailNotification struct {
	To      string
	Subject string
	Body    string
}

// Notification - единица очереди уведомлений: письмо клиенту и/или
// рассылка в канал персонала
type Notification struct {
	Email     *EmailNotification
	Broadcast string
}

type NotifierService interface {
	Enqueue(notification Notification)
}

// Notifier - очередь отложенной доставки уведомлений. Постановка в
// очередь не блокирует обработчик запроса: медленный или недоступный
// провайдер уведомлений не задерживает смену статуса заказа.
type Notifier struct {
	Dispatcher BroadcastService
	Email      client.Sender
	Metrics    *metrics.Metrics
	Config     config.NotifyConfig
	queue      chan Notification
}

// Создание сервиса
func NewNotifier(dispatcher BroadcastService, email client.Sender, m *metrics.Metrics, cfg config.NotifyConfig) *Notifier {
	return &Notifier{
		Dispatcher: dispatcher,
		Email:      email,
		Metrics:    m,
		Config:     cfg,
		queue:      make(chan Notification, cfg.QueueSize),
	}
}

// Enqueue - неблокирующая постановка уведомления в очередь.
// Переполнение очереди роняет уведомление, не запрос: доставка
// best-effort по контракту.
func (n *Notifier) Enqueue(notification Notification) {
	select {
	case n.queue <- notification:
	default:
		logger.Warn("Notification queue is full, dropping notification")
	}
}

// Queue - канал очереди для воркера доставки
func (n *Notifier) Queue() <-chan Notification {
	return n.queue
}

// Process - доставка одного уведомления. Ошибки доставки логируются и
// не возвращаются: состояние заказа уже зафиксировано в хранилище.
func (n *Notifier) Process(ctx context.Context, notification Notification) {
	if notification.Email != nil {
		// зависший SMTP не должен останавливать воркер доставки:
		// на каждую отправку письма выдаётся ограниченный срок
		sendCtx, cancel := context.WithTimeout(ctx, n.Config.SendTimeout)
		defer cancel()
		if err := n.Email.Send(sendCtx, notification.Email.To, notification.Email.Subject, notification.Email.Body); err != nil {
			logger.Error("Failed to send email", notification.Email.To, err)
			n.Metrics.IncNotification(metrics.ChannelEmail, metrics.OutcomeFailed)
		} else {
			logger.Info("Email sent", notification.Email.To)
			n.Metrics.IncNotification(metrics.ChannelEmail, metrics.OutcomeSent)
		}
	}
	if notification.Broadcast != "" {
		report, err := n.Dispatcher.Broadcast(ctx, notification.Broadcast)
		if err != nil {
			logger.Error("Broadcast failed", err)
			return
		}
		logger.Info("Broadcast finished",
			"attempted", report.Attempted,
			"sent", report.Sent,
			"deactivated", report.Deactivated,
		)
	}
}
