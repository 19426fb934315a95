package helpers

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 30, 0, 0, time.UTC)

	format := regexp.MustCompile(`^ORD-20250901-\d{4}$`)
	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber(now)
		if !format.MatchString(number) {
			t.Fatalf("Unexpected order number format: '%s'", number)
		}
		if !strings.HasPrefix(number, "ORD-20250901-") {
			t.Fatalf("Order number must carry the order date: '%s'", number)
		}
	}
}
