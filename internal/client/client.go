package client

import (
	"context"
	"errors"
	"net/http"
	"time"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Messenger - канал рассылки сообщений подписчикам (Telegram)
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error)
}

// Sender - канал отправки писем клиентам
type Sender interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

var (
	ErrServiceUnavailable = errors.New("telegram api unavailable")
	// ErrBotBlocked - получатель заблокировал бота, доставка невозможна
	ErrBotBlocked = errors.New("bot blocked by recipient")
	// ErrBadMessage - провайдер отверг запрос как некорректный
	ErrBadMessage = errors.New("malformed message request")
)

type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}
