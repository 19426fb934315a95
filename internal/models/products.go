package models

import "github.com/shopspring/decimal"

// Статусы товара в каталоге
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// ProductData - запись каталога товаров
type ProductData struct {
	ID     string
	Name   string
	Price  decimal.Decimal
	Status string
}

// Available - товар доступен для заказа
func (p *ProductData) Available() bool {
	return p.Status == ProductStatusActive
}
