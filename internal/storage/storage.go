package storage

import (
	"context"
	"errors"

	"github.com/denmor86/dessert-shop/internal/models"
)

type UsersStorage interface {
	AddUser(ctx context.Context, login string, email string, password string) error
	GetUser(ctx context.Context, login string) (*models.UserData, error)
	GetUserByID(ctx context.Context, id string) (*models.UserData, error)
}

// ProductsStorage - тонкая обёртка над каталогом, нужна только для
// снимка цены и названия товара при оформлении заказа
type ProductsStorage interface {
	GetProduct(ctx context.Context, id string) (*models.ProductData, error)
}

type OrdersStorage interface {
	AddOrder(ctx context.Context, order models.OrderData) error
	GetOrder(ctx context.Context, id string) (*models.OrderData, error)
	GetOrderByPayment(ctx context.Context, paymentID string) (*models.OrderData, error)
	GetOrders(ctx context.Context, userID string, limit int, offset int) ([]models.OrderData, error)
	UpdateOrderStatus(ctx context.Context, id string, from models.OrderStatus, to models.OrderStatus) error
	UpdateOrderPayment(ctx context.Context, id string, from models.PaymentStatus, to models.PaymentStatus) error
	SetOrderPayment(ctx context.Context, id string, paymentID string) error
}

type SubscribersStorage interface {
	UpsertSubscriber(ctx context.Context, chatID int64, firstName string, username string) error
	SetSubscriberActive(ctx context.Context, chatID int64, active bool) error
	GetActiveSubscribers(ctx context.Context) ([]models.SubscriberData, error)
	GetSubscriberStats(ctx context.Context) (*models.SubscriberStats, error)
}

// IStorage - общий интерфейс хранилища сервиса
type IStorage interface {
	UsersStorage
	OrdersStorage
	SubscribersStorage
	ProductsStorage
}

type Storage struct {
	UsersStorage
	OrdersStorage
	SubscribersStorage
	ProductsStorage
}

// Создание хранилища
func NewStorage(db *Database) *Storage {
	return &Storage{
		UsersStorage:       NewUsersStorage(db),
		OrdersStorage:      NewOrdersStorage(db),
		SubscribersStorage: NewSubscribersStorage(db),
		ProductsStorage:    NewProductsStorage(db),
	}
}

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")

	ErrAlreadyExists = errors.New("already exists")

	// ErrStatusConflict - CAS-обновление не применилось: статус заказа
	// изменился между чтением и записью
	ErrStatusConflict = errors.New("order status conflict")
)
