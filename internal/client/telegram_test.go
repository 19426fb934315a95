package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"
)

type doerFunc func(req *http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func apiReply(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func TestTelegramClient_SendMessage(t *testing.T) {
	testCases := []struct {
		TestName      string
		Response      string
		ExpectedError error
	}{
		{
			TestName:      "Success #1",
			Response:      `{"ok":true,"result":{}}`,
			ExpectedError: nil,
		},
		{
			TestName:      "Error. Bot blocked by recipient #2",
			Response:      `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`,
			ExpectedError: ErrBotBlocked,
		},
		{
			TestName:      "Error. Malformed request #3",
			Response:      `{"ok":false,"error_code":400,"description":"Bad Request: message text is empty"}`,
			ExpectedError: ErrBadMessage,
		},
		{
			TestName:      "Error. Service failure #4",
			Response:      `{"ok":false,"error_code":502,"description":"Bad Gateway"}`,
			ExpectedError: ErrServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			doer := doerFunc(func(req *http.Request) (*http.Response, error) {
				if req.URL.Path != "/bottoken/sendMessage" {
					t.Errorf("Unexpected request path: %s", req.URL.Path)
				}
				return apiReply(tc.Response), nil
			})
			client := NewTelegramClient("http://telegram.local", "token", doer)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			err := client.SendMessage(ctx, 42, "hello")
			if err != nil && tc.ExpectedError == nil {
				t.Errorf("Expected no error, got '%v'", err)
			} else if err == nil && tc.ExpectedError != nil {
				t.Errorf("Expected error, got none")
			} else if err != nil && !errors.Is(err, tc.ExpectedError) {
				t.Errorf("Expected error: '%v', got: '%v'", tc.ExpectedError, err)
			}
		})
	}
}

func TestTelegramClient_RateLimit(t *testing.T) {
	// 429 возвращает типизированную ошибку с длительностью паузы
	doer := doerFunc(func(req *http.Request) (*http.Response, error) {
		return apiReply(`{"ok":false,"error_code":429,"description":"Too Many Requests","parameters":{"retry_after":3}}`), nil
	})
	client := NewTelegramClient("http://telegram.local", "token", doer)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := client.SendMessage(ctx, 42, "hello")
	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("Expected RateLimitError, got '%v'", err)
	}
	if rateErr.RetryAfter != 3*time.Second {
		t.Errorf("Expected retry after 3s, got %s", rateErr.RetryAfter)
	}
}

func TestTelegramClient_GetUpdates(t *testing.T) {
	doer := doerFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/bottoken/getUpdates" {
			t.Errorf("Unexpected request path: %s", req.URL.Path)
		}
		return apiReply(`{"ok":true,"result":[
			{"update_id":10,"message":{"text":"/start","from":{"id":123456789012345,"first_name":"Maria","username":"maria_sweets"},"chat":{"id":123456789012345}}}
		]}`), nil
	})
	client := NewTelegramClient("http://telegram.local", "token", doer)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	updates, err := client.GetUpdates(ctx, 0, 25*time.Second)
	if err != nil {
		t.Fatalf("Expected no error, got '%v'", err)
	}
	if len(updates) != 1 {
		t.Fatalf("Expected 1 update, got %d", len(updates))
	}
	if updates[0].Message.Chat.ID != 123456789012345 {
		t.Errorf("Chat id must survive as int64, got %d", updates[0].Message.Chat.ID)
	}
}
