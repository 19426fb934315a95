package services

import (
	"context"

	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/models"
	"github.com/denmor86/dessert-shop/internal/storage"
)

type SubscribersService interface {
	Subscribe(ctx context.Context, chatID int64, firstName string, username string) error
	Unsubscribe(ctx context.Context, chatID int64) error
	Deactivate(ctx context.Context, chatID int64) error
	ListActive(ctx context.Context) ([]models.SubscriberData, error)
	Stats(ctx context.Context) (*models.SubscriberStats, error)
}

// Subscribers - реестр подписчиков канала уведомлений.
// Подписчики никогда не удаляются, только деактивируются.
type Subscribers struct {
	Storage storage.IStorage
}

// Создание сервиса
func NewSubscribers(storage storage.IStorage) SubscribersService {
	return &Subscribers{Storage: storage}
}

// Subscribe - подписка или реактивация существующего подписчика
// с обновлением имени
func (s *Subscribers) Subscribe(ctx context.Context, chatID int64, firstName string, username string) error {
	if err := s.Storage.UpsertSubscriber(ctx, chatID, firstName, username); err != nil {
		logger.Error("Failed to subscribe", chatID, err)
		return err
	}
	logger.Info("Subscriber added", chatID)
	return nil
}

// Unsubscribe - отписка. Идемпотентна: повторная отписка или отписка
// неизвестного подписчика не ошибка.
func (s *Subscribers) Unsubscribe(ctx context.Context, chatID int64) error {
	if err := s.Storage.SetSubscriberActive(ctx, chatID, false); err != nil {
		logger.Error("Failed to unsubscribe", chatID, err)
		return err
	}
	logger.Info("Subscriber unsubscribed", chatID)
	return nil
}

// Deactivate - исключение подписчика из рассылок при постоянном сбое доставки
func (s *Subscribers) Deactivate(ctx context.Context, chatID int64) error {
	return s.Storage.SetSubscriberActive(ctx, chatID, false)
}

// ListActive - снимок активных подписчиков на момент вызова
func (s *Subscribers) ListActive(ctx context.Context) ([]models.SubscriberData, error) {
	return s.Storage.GetActiveSubscribers(ctx)
}

// Stats - статистика подписчиков для административного интерфейса
func (s *Subscribers) Stats(ctx context.Context) (*models.SubscriberStats, error) {
	return s.Storage.GetSubscriberStats(ctx)
}
