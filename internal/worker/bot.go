package worker

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"

	"github.com/denmor86/dessert-shop/internal/client"
	"github.com/denmor86/dessert-shop/internal/config"
	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/services"
	"github.com/sony/gobreaker"
)

func InitCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "telegram-api",
		Timeout: 30 * time.Second, // через 30 сек пробуем подключиться
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// 5 попыток достучатся до сервиса
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Circuit Breaker '%s': %s → %s", name, from, to)
		},
	})
}

// Тексты ответов бота на команды
const (
	welcomeReply = "👋 Привет, %s!\n\n" +
		"Вы подписались на уведомления от Dessert Shop. " +
		"Здесь вы будете получать информацию о новых заказах и статусах."
	goodbyeReply = "Вы отписались от уведомлений. Чтобы снова подписаться, отправьте /start"
	helpReply    = "📋 <b>Доступные команды:</b>\n\n" +
		"/start - Подписаться на уведомления\n" +
		"/stop - Отписаться от уведомлений\n" +
		"/help - Показать эту справку\n\n" +
		"🤖 Этот бот отправляет уведомления о новых заказах и изменениях статусов."
)

// BotWorker - воркер длинного опроса Telegram Bot API: источник
// входящих команд подписки. Запуск и остановка явные, владелец -
// процесс приложения.
type BotWorker struct {
	Registry  services.SubscribersService
	Messenger client.Messenger
	Breaker   *gobreaker.CircuitBreaker
	WaitGroup sync.WaitGroup
	QuitChan  chan struct{}
	Config    config.TelegramConfig

	offset int64
}

// NewBotWorker - конструктор воркера опроса бота
func NewBotWorker(registry services.SubscribersService, messenger client.Messenger, cfg config.TelegramConfig) *BotWorker {
	return &BotWorker{
		Registry:  registry,
		Messenger: messenger,
		Breaker:   InitCircuitBreaker(),
		QuitChan:  make(chan struct{}),
		Config:    cfg,
	}
}

// Start - запускает воркер в фоне
func (w *BotWorker) Start(ctx context.Context) {
	w.WaitGroup.Add(1)
	go w.Run(ctx)
}

// Stop - корректно останавливает воркер
func (w *BotWorker) Stop() {
	close(w.QuitChan)
	w.WaitGroup.Wait()
}

// Run - основная рабочая логика
func (w *BotWorker) Run(ctx context.Context) {
	defer w.WaitGroup.Done()

	ticker := time.NewTicker(w.Config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.QuitChan:
			logger.Info("BotWorker signal stop")
			return
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}

// Poll - получение и обработка пачки обновлений
func (w *BotWorker) Poll(ctx context.Context) {
	if w.Breaker.State() == gobreaker.StateOpen {
		logger.Warn("%s unavailable. Waiting...", w.Breaker.Name())
		return
	}

	result, err := w.Breaker.Execute(func() (interface{}, error) {
		return w.Messenger.GetUpdates(ctx, w.offset, w.Config.PollTimeout)
	})
	if err != nil {
		logger.Error("error get bot updates", err)
		return
	}

	updates := result.([]client.Update)
	for _, update := range updates {
		w.offset = update.UpdateID + 1
		w.HandleUpdate(ctx, update)
	}
}

// HandleUpdate - обработка одного входящего сообщения.
// Идентификатор чата проходит как int64 от провайдера до хранилища.
func (w *BotWorker) HandleUpdate(ctx context.Context, update client.Update) {
	message := update.Message
	if message == nil || message.From == nil {
		return
	}

	command := message.Text
	if idx := strings.IndexByte(command, ' '); idx >= 0 {
		command = command[:idx]
	}

	chatID := message.Chat.ID
	switch command {
	case "/start":
		if err := w.Registry.Subscribe(ctx, chatID, message.From.FirstName, message.From.Username); err != nil {
			w.reply(ctx, chatID, "❌ Произошла ошибка при подписке. Пожалуйста, попробуйте позже.")
			return
		}
		w.reply(ctx, chatID, fmt.Sprintf(welcomeReply, html.EscapeString(message.From.FirstName)))
	case "/stop":
		if err := w.Registry.Unsubscribe(ctx, chatID); err != nil {
			w.reply(ctx, chatID, "❌ Произошла ошибка при отписке. Пожалуйста, попробуйте позже.")
			return
		}
		w.reply(ctx, chatID, goodbyeReply)
	case "/help":
		w.reply(ctx, chatID, helpReply)
	}
}

// reply - ответ в чат, ошибки отправки только логируются
func (w *BotWorker) reply(ctx context.Context, chatID int64, text string) {
	if err := w.Messenger.SendMessage(ctx, chatID, text); err != nil {
		logger.Error("Failed to send bot reply", chatID, err)
	}
}
