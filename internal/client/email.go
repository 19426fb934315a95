package client

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
)

// SMTPSender - отправка писем через SMTP-шлюз
type SMTPSender struct {
	Addr     string
	Username string
	Password string
	From     string
}

func NewSMTPSender(addr string, username string, password string, from string) *SMTPSender {
	return &SMTPSender{
		Addr:     addr,
		Username: username,
		Password: password,
		From:     from,
	}
}

// Send - отправка HTML-письма. Вызов smtp.SendMail не принимает контекст,
// поэтому отмена ожидания выполняется через канал завершения.
func (s *SMTPSender) Send(ctx context.Context, to string, subject string, body string) error {
	var auth smtp.Auth
	if s.Username != "" && s.Password != "" {
		host := s.Addr
		if idx := strings.IndexByte(host, ':'); idx >= 0 {
			host = host[:idx]
		}
		auth = smtp.PlainAuth("", s.Username, s.Password, host)
	}

	msg := s.message(to, subject, body)

	// горутина живёт до закрытия TCP-соединения и после отмены контекста,
	// поэтому контекст отправки обязан иметь таймаут
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(s.Addr, auth, s.From, []string{to}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// message - сборка письма. Тема кодируется по RFC 2047: заголовки
// не допускают сырой UTF-8.
func (s *SMTPSender) message(to string, subject string, body string) []byte {
	encoded := mime.QEncoding.Encode("UTF-8", subject)
	return []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", s.From, to, encoded) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)
}
