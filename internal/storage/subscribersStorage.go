package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/denmor86/dessert-shop/internal/models"
)

const (
	// Повторная подписка реактивирует запись и обновляет имя
	UpsertSubscriber = `INSERT INTO SUBSCRIBERS (chat_id, first_name, username, is_active, subscribed_at)
						VALUES ($1, $2, $3, TRUE, NOW())
						ON CONFLICT (chat_id) DO UPDATE
						SET first_name = EXCLUDED.first_name,
						    username = EXCLUDED.username,
						    is_active = TRUE;`
	SetSubscriberActive  = `UPDATE SUBSCRIBERS SET is_active = $1 WHERE chat_id = $2;`
	GetActiveSubscribers = `SELECT chat_id, first_name, username, is_active, subscribed_at
						FROM SUBSCRIBERS WHERE is_active = TRUE ORDER BY subscribed_at;`
	GetSubscriberStats = `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM SUBSCRIBERS;`
)

type SubscriberDatabase struct {
	DB *Database
}

// Создание хранилища
func NewSubscribersStorage(db *Database) SubscribersStorage {
	return &SubscriberDatabase{DB: db}
}

func (s *SubscriberDatabase) UpsertSubscriber(ctx context.Context, chatID int64, firstName string, username string) error {
	if _, err := s.DB.Pool.Exec(ctx, UpsertSubscriber, chatID, firstName, username); err != nil {
		return fmt.Errorf("failed to upsert subscriber: %w", err)
	}
	return nil
}

// SetSubscriberActive - деактивация/реактивация подписчика.
// Идемпотентна: отсутствие записи или повторная деактивация не ошибка.
func (s *SubscriberDatabase) SetSubscriberActive(ctx context.Context, chatID int64, active bool) error {
	if _, err := s.DB.Pool.Exec(ctx, SetSubscriberActive, active, chatID); err != nil {
		return fmt.Errorf("failed to update subscriber: %w", err)
	}
	return nil
}

func (s *SubscriberDatabase) GetActiveSubscribers(ctx context.Context) ([]models.SubscriberData, error) {
	var subscribers []models.SubscriberData
	rows, err := s.DB.Pool.Query(ctx, GetActiveSubscribers)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscribers: %w", err)
	}
	for rows.Next() {
		var (
			chatID       int64
			firstName    string
			username     string
			active       bool
			subscribedAt time.Time
		)
		if err := rows.Scan(&chatID, &firstName, &username, &active, &subscribedAt); err != nil {
			return subscribers, fmt.Errorf("failed scan subscriber data: %w", err)
		}
		subscribers = append(subscribers, models.SubscriberData{
			ChatID:       chatID,
			FirstName:    firstName,
			Username:     username,
			Active:       active,
			SubscribedAt: subscribedAt,
		})
	}
	return subscribers, nil
}

func (s *SubscriberDatabase) GetSubscriberStats(ctx context.Context) (*models.SubscriberStats, error) {
	var stats models.SubscriberStats
	err := s.DB.Pool.QueryRow(ctx, GetSubscriberStats).Scan(&stats.Total, &stats.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriber stats: %w", err)
	}
	return &stats, nil
}
