package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TelegramUser - отправитель сообщения
type TelegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// TelegramChat - чат, из которого пришло сообщение
type TelegramChat struct {
	ID int64 `json:"id"`
}

// TelegramMessage - входящее сообщение
type TelegramMessage struct {
	Text string        `json:"text"`
	From *TelegramUser `json:"from"`
	Chat TelegramChat  `json:"chat"`
}

// Update - элемент ленты обновлений Bot API
type Update struct {
	UpdateID int64            `json:"update_id"`
	Message  *TelegramMessage `json:"message"`
}

// apiResponse - обёртка ответа Bot API
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type getUpdatesRequest struct {
	Offset  int64 `json:"offset"`
	Timeout int   `json:"timeout"`
}

// TelegramClient - клиент Telegram Bot API
type TelegramClient struct {
	baseURL    string
	token      string
	httpClient HTTPClient
	limiter    *RateLimiter
}

func NewTelegramClient(baseURL string, token string, client HTTPClient) *TelegramClient {
	return &TelegramClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: client,
		limiter:    NewRateLimiter(),
	}
}

// SendMessage - отправка HTML-сообщения в чат
func (c *TelegramClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	payload := sendMessageRequest{ChatID: chatID, Text: text, ParseMode: "HTML"}
	_, err := c.call(ctx, "sendMessage", payload)
	return err
}

// GetUpdates - длинный опрос ленты обновлений начиная с offset
func (c *TelegramClient) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	payload := getUpdatesRequest{Offset: offset, Timeout: int(timeout.Seconds())}
	result, err := c.call(ctx, "getUpdates", payload)
	if err != nil {
		return nil, err
	}
	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("failed to decode updates: %w", err)
	}
	return updates, nil
}

func (c *TelegramClient) call(ctx context.Context, method string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	url := c.baseURL + "/bot" + c.token + "/" + method
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !result.OK {
		return nil, c.handleAPIError(result)
	}
	return result.Result, nil
}

// handleAPIError - классификация ошибки Bot API по коду.
// 403 - постоянный отказ (бот заблокирован), 400 - некорректный запрос,
// 429 - превышение лимита с указанием паузы.
func (c *TelegramClient) handleAPIError(resp apiResponse) error {
	switch resp.ErrorCode {
	case http.StatusForbidden:
		return ErrBotBlocked
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadMessage, resp.Description)
	case http.StatusTooManyRequests:
		retryAfter := time.Minute
		if resp.Parameters != nil && resp.Parameters.RetryAfter > 0 {
			retryAfter = time.Duration(resp.Parameters.RetryAfter) * time.Second
		}
		c.limiter.BlockFor(retryAfter)
		return &RateLimitError{RetryAfter: retryAfter}
	default:
		return fmt.Errorf("%w: %s", ErrServiceUnavailable, resp.Description)
	}
}
