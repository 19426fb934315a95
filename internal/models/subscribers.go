package models

import "time"

// SubscriberData - подписчик канала уведомлений.
// ChatID - идентификатор чата Telegram, всегда int64: значения не
// помещаются в 32 бита и теряют точность при прохождении через float64.
type SubscriberData struct {
	ChatID       int64
	FirstName    string
	Username     string
	Active       bool
	SubscribedAt time.Time
}

// SubscriberStats - статистика подписчиков канала
type SubscriberStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// BroadcastRequest - модель запроса административной рассылки
type BroadcastRequest struct {
	Message string `json:"message"`
}

// BroadcastResponse - итог рассылки для выдачи
type BroadcastResponse struct {
	Attempted   int `json:"attempted"`
	Sent        int `json:"sent"`
	Deactivated int `json:"deactivated"`
}
