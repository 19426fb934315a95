package client

import (
	"strings"
	"testing"
)

func TestSMTPSender_Message(t *testing.T) {
	sender := NewSMTPSender("smtp.example.com:587", "", "", "shop@example.com")

	testCases := []struct {
		TestName        string
		Subject         string
		ExpectedSubject string
	}{
		{
			TestName:        "Success. ASCII subject passes through #1",
			Subject:         "Order ORD-20250901-0042",
			ExpectedSubject: "Subject: Order ORD-20250901-0042\r\n",
		},
		{
			TestName:        "Success. Cyrillic subject is RFC 2047 encoded #2",
			Subject:         "Подтверждение заказа",
			ExpectedSubject: "Subject: =?UTF-8?q?",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.TestName, func(t *testing.T) {
			msg := string(sender.message("mda@example.com", tc.Subject, "<p>body</p>"))

			if !strings.Contains(msg, tc.ExpectedSubject) {
				t.Errorf("Expected message to contain '%s', got '%s'", tc.ExpectedSubject, msg)
			}
			// сырой UTF-8 в заголовках недопустим
			headers := msg[:strings.Index(msg, "\r\n\r\n")]
			for _, r := range headers {
				if r > 127 {
					t.Fatalf("Expected ASCII-only headers, got '%s'", headers)
				}
			}
			if !strings.Contains(msg, "<p>body</p>") {
				t.Errorf("Expected message to contain body, got '%s'", msg)
			}
		})
	}
}
