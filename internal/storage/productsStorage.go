package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/denmor86/dessert-shop/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	GetProduct = `SELECT id, name, price, status FROM PRODUCTS WHERE id=$1;`
)

type ProductDatabase struct {
	DB *Database
}

// Создание хранилища
func NewProductsStorage(db *Database) ProductsStorage {
	return &ProductDatabase{DB: db}
}

func (s *ProductDatabase) GetProduct(ctx context.Context, id string) (*models.ProductData, error) {
	var (
		productID string
		name      string
		price     decimal.Decimal
		status    string
	)
	err := s.DB.Pool.QueryRow(ctx, GetProduct, id).Scan(&productID, &name, &price, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &models.ProductData{
		ID:     productID,
		Name:   name,
		Price:  price,
		Status: status,
	}, nil
}
