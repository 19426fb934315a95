package helpers

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/go-chi/jwtauth/v5"
)

// GetUsername - извлекает имя пользователя из контекста JWT токена
func GetUsername(context context.Context) (string, error) {
	_, claims, _ := jwtauth.FromContext(context)
	login, ok := claims["username"].(string)
	if !ok {
		logger.Warn("Undefined username from token")
		return "", fmt.Errorf("undefined username")
	}
	return login, nil
}

// IsAdmin - извлекает признак администратора из контекста JWT токена
func IsAdmin(context context.Context) bool {
	_, claims, _ := jwtauth.FromContext(context)
	admin, ok := claims["admin"].(bool)
	return ok && admin
}

// GenerateOrderNumber - генерация номера заказа вида ORD-YYYYMMDD-NNNN.
// Суффикс случайный: номер не обязан быть глобально уникальным,
// практическая уникальность в пределах дня достаточна.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), rand.Intn(10000))
}
