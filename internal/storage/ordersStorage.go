package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	InsertOrder = `INSERT INTO ORDERS (id, number, user_id, status, payment_status, payment_method, payment_id, total,
						address_street, address_house, address_apartment, address_floor, address_entrance, address_doorcode, address_comment,
						created_at, updated_at)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
					ON CONFLICT (id) DO NOTHING
					RETURNING id;`
	InsertOrderItem = `INSERT INTO ORDER_ITEMS (order_id, product_id, product_name, quantity, unit_price)
					VALUES ($1, $2, $3, $4, $5);`
	SelectOrder = `SELECT id, number, user_id, status, payment_status, payment_method, payment_id, total,
						address_street, address_house, address_apartment, address_floor, address_entrance, address_doorcode, address_comment,
						created_at, updated_at
					FROM ORDERS `
	GetOrderByID      = SelectOrder + `WHERE id=$1;`
	GetOrderByPayment = SelectOrder + `WHERE payment_id=$1;`
	GetUserOrders     = SelectOrder + `WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`
	GetOrderItems     = `SELECT product_id, product_name, quantity, unit_price FROM ORDER_ITEMS WHERE order_id=$1 ORDER BY id;`

	// Обновления статусов выполняются только по условию текущего значения
	// (compare-and-swap), чтобы конкурирующие переходы не затирали друг друга
	UpdateStatusCAS = `UPDATE ORDERS
					SET status = $1, updated_at = NOW()
					WHERE id = $2 AND status = $3;`
	UpdatePaymentCAS = `UPDATE ORDERS
					SET payment_status = $1, updated_at = NOW()
					WHERE id = $2 AND payment_status = $3;`
	UpdatePaymentID = `UPDATE ORDERS SET payment_id = $1, updated_at = NOW() WHERE id = $2;`
)

type OrderDatabase struct {
	DB *Database
}

// Создание хранилища
func NewOrdersStorage(db *Database) OrdersStorage {
	return &OrderDatabase{DB: db}
}

// AddOrder - добавление заказа вместе с позициями в одной транзакции
func (s *OrderDatabase) AddOrder(ctx context.Context, order models.OrderData) error {
	tx, err := s.DB.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Гарантированный откат при ошибке
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("AddOrder. rollback failed:", zap.Error(rbErr))
			}
		}
	}()

	var prevID string
	err = tx.QueryRow(ctx, InsertOrder,
		order.ID, order.Number, order.UserID, order.Status, order.PaymentStatus, order.PaymentMethod, order.PaymentID, order.Total,
		order.Address.Street, order.Address.House, order.Address.Apartment, order.Address.Floor,
		order.Address.Entrance, order.Address.Doorcode, order.Address.Comment,
		order.CreatedAt, order.CreatedAt,
	).Scan(&prevID)
	if err != nil {
		var pgErr *pgconn.PgError
		// при конфликте по id вставка ничего не возвращает
		if errors.Is(err, pgx.ErrNoRows) || (errors.As(err, &pgErr) && pgErr.Code == "23505") {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to add order: %w", err)
	}

	for _, item := range order.Items {
		if _, err = tx.Exec(ctx, InsertOrderItem, order.ID, item.ProductID, item.Name, item.Quantity, item.UnitPrice); err != nil {
			return fmt.Errorf("failed to add order item: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("AddOrder. Commit failed: %w", err)
	}
	return nil
}

func (s *OrderDatabase) GetOrder(ctx context.Context, id string) (*models.OrderData, error) {
	return s.getOrder(ctx, GetOrderByID, id)
}

func (s *OrderDatabase) GetOrderByPayment(ctx context.Context, paymentID string) (*models.OrderData, error) {
	return s.getOrder(ctx, GetOrderByPayment, paymentID)
}

func (s *OrderDatabase) getOrder(ctx context.Context, query string, arg string) (*models.OrderData, error) {
	order, err := scanOrder(s.DB.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := s.getOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (s *OrderDatabase) GetOrders(ctx context.Context, userID string, limit int, offset int) ([]models.OrderData, error) {
	var orders []models.OrderData
	rows, err := s.DB.Pool.Query(ctx, GetUserOrders, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return orders, fmt.Errorf("failed scan order data: %w", err)
		}
		orders = append(orders, *order)
	}
	for i := range orders {
		items, err := s.getOrderItems(ctx, orders[i].ID)
		if err != nil {
			return orders, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *OrderDatabase) getOrderItems(ctx context.Context, orderID string) ([]models.OrderItemData, error) {
	var items []models.OrderItemData
	rows, err := s.DB.Pool.Query(ctx, GetOrderItems, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	for rows.Next() {
		var (
			productID string
			name      string
			quantity  int
			unitPrice decimal.Decimal
		)
		if err := rows.Scan(&productID, &name, &quantity, &unitPrice); err != nil {
			return items, fmt.Errorf("failed scan order item: %w", err)
		}
		items = append(items, models.OrderItemData{
			ProductID: productID,
			Name:      name,
			Quantity:  quantity,
			UnitPrice: unitPrice,
		})
	}
	return items, nil
}

// UpdateOrderStatus - CAS-обновление статуса заказа: запись применяется
// только если текущий статус равен from, иначе возвращается ErrStatusConflict
func (s *OrderDatabase) UpdateOrderStatus(ctx context.Context, id string, from models.OrderStatus, to models.OrderStatus) error {
	tag, err := s.DB.Pool.Exec(ctx, UpdateStatusCAS, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return s.casConflict(ctx, id)
	}
	return nil
}

// UpdateOrderPayment - CAS-обновление статуса оплаты заказа
func (s *OrderDatabase) UpdateOrderPayment(ctx context.Context, id string, from models.PaymentStatus, to models.PaymentStatus) error {
	tag, err := s.DB.Pool.Exec(ctx, UpdatePaymentCAS, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return s.casConflict(ctx, id)
	}
	return nil
}

// casConflict - различает гонку статусов и отсутствие заказа
func (s *OrderDatabase) casConflict(ctx context.Context, id string) error {
	var number string
	err := s.DB.Pool.QueryRow(ctx, `SELECT number FROM ORDERS WHERE id=$1;`, id).Scan(&number)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check order: %w", err)
	}
	return ErrStatusConflict
}

func (s *OrderDatabase) SetOrderPayment(ctx context.Context, id string, paymentID string) error {
	tag, err := s.DB.Pool.Exec(ctx, UpdatePaymentID, paymentID, id)
	if err != nil {
		return fmt.Errorf("failed to set payment id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// scanOrder - чтение строки заказа из результата запроса SelectOrder
func scanOrder(row pgx.Row) (*models.OrderData, error) {
	var (
		order     models.OrderData
		total     decimal.Decimal
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(
		&order.ID,
		&order.Number,
		&order.UserID,
		&order.Status,
		&order.PaymentStatus,
		&order.PaymentMethod,
		&order.PaymentID,
		&total,
		&order.Address.Street,
		&order.Address.House,
		&order.Address.Apartment,
		&order.Address.Floor,
		&order.Address.Entrance,
		&order.Address.Doorcode,
		&order.Address.Comment,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.Total = total
	order.CreatedAt = createdAt
	order.UpdatedAt = updatedAt
	return &order, nil
}
