package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/denmor86/dessert-shop/internal/models"
	"github.com/shopspring/decimal"
)

// statusIcons - пиктограммы статусов для сообщений в канал персонала
var statusIcons = map[models.OrderStatus]string{
	models.OrderStatusConfirmed:        "✅",
	models.OrderStatusPreparing:        "👨‍🍳",
	models.OrderStatusReadyForDelivery: "📦",
	models.OrderStatusOutForDelivery:   "🚗",
	models.OrderStatusDelivered:        "🎉",
	models.OrderStatusCancelled:        "❌",
}

// statusMessages - формулировки статусов для писем клиентам
var statusMessages = map[models.OrderStatus]string{
	models.OrderStatusConfirmed:        "подтверждён и передан в работу",
	models.OrderStatusPreparing:        "готовится на нашей кухне",
	models.OrderStatusReadyForDelivery: "готов к доставке",
	models.OrderStatusOutForDelivery:   "передан курьеру",
	models.OrderStatusDelivered:        "доставлен",
	models.OrderStatusCancelled:        "отменён",
}

// NewOrderBroadcast - сообщение в канал персонала о новом оплаченном заказе
func NewOrderBroadcast(order *models.OrderData, customerName string) string {
	var b strings.Builder
	b.WriteString("🆕 <b>Новый заказ!</b>\n\n")
	fmt.Fprintf(&b, "📦 Номер: %s\n", order.Number)
	fmt.Fprintf(&b, "👤 Клиент: %s\n", html.EscapeString(customerName))
	fmt.Fprintf(&b, "💰 Сумма: %s ₽\n", order.Total.StringFixed(2))
	fmt.Fprintf(&b, "📍 Адрес: %s, %s\n", html.EscapeString(order.Address.Street), html.EscapeString(order.Address.House))
	if order.Address.Apartment != "" {
		fmt.Fprintf(&b, "🏠 Квартира: %s\n", html.EscapeString(order.Address.Apartment))
	}
	b.WriteString("\n📋 Товары:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %s x %d\n", html.EscapeString(item.Name), item.Quantity)
	}
	return strings.TrimRight(b.String(), "\n")
}

// StatusChangedBroadcast - сообщение в канал персонала о смене статуса заказа
func StatusChangedBroadcast(order *models.OrderData, customerName string, from models.OrderStatus, to models.OrderStatus) string {
	icon := statusIcons[to]
	if icon == "" {
		icon = "📝"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>Статус заказа изменен</b>\n\n", icon)
	fmt.Fprintf(&b, "📦 Заказ: %s\n", order.Number)
	fmt.Fprintf(&b, "🔄 Статус: %s → %s\n", from, to)
	fmt.Fprintf(&b, "👤 Клиент: %s", html.EscapeString(customerName))
	return b.String()
}

// OrderConfirmationEmail - письмо клиенту с подтверждением заказа:
// номер, позиции с зафиксированными ценами, итог и адрес доставки
func OrderConfirmationEmail(order *models.OrderData) (string, string) {
	subject := fmt.Sprintf("Подтверждение заказа %s", order.Number)

	var items strings.Builder
	for _, item := range order.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&items, `<div style="display: flex; justify-content: space-between; margin-bottom: 8px;">
				<span>%s x %d</span><span>%s ₽</span>
			</div>`, html.EscapeString(item.Name), item.Quantity, lineTotal.StringFixed(2))
	}

	address := html.EscapeString(order.Address.Street) + ", " + html.EscapeString(order.Address.House)
	if order.Address.Apartment != "" {
		address += ", кв. " + html.EscapeString(order.Address.Apartment)
	}

	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #e91e63;">Спасибо за заказ! 🎉</h2>
		<p>Ваш заказ <strong>%s</strong> принят и передан в работу.</p>
		<h3>Состав заказа:</h3>
		<div style="background: #f9f9f9; padding: 15px; border-radius: 4px;">
			%s
			<hr style="margin: 10px 0;">
			<div style="display: flex; justify-content: space-between; font-weight: bold;">
				<span>Итого:</span><span>%s ₽</span>
			</div>
		</div>
		<h3>Адрес доставки:</h3>
		<p>%s</p>
		<p>Мы сообщим, когда заказ будет в пути!</p>
	</div>`, order.Number, items.String(), order.Total.StringFixed(2), address)

	return subject, body
}

// PaymentUpdateEmail - письмо клиенту о движении оплаты без смены
// статуса самого заказа (ожидание подтверждения, возврат)
func PaymentUpdateEmail(order *models.OrderData) (string, string) {
	subject := fmt.Sprintf("Оплата заказа %s", order.Number)
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #e91e63;">Статус оплаты изменён</h2>
		<p>Статус оплаты заказа <strong>%s</strong>: <strong>%s</strong>.</p>
	</div>`, order.Number, order.PaymentStatus)
	return subject, body
}

// PaymentUpdateBroadcast - сообщение в канал персонала о движении оплаты
func PaymentUpdateBroadcast(order *models.OrderData, customerName string) string {
	var b strings.Builder
	b.WriteString("💳 <b>Статус оплаты изменен</b>\n\n")
	fmt.Fprintf(&b, "📦 Заказ: %s\n", order.Number)
	fmt.Fprintf(&b, "💰 Оплата: %s\n", order.PaymentStatus)
	fmt.Fprintf(&b, "👤 Клиент: %s", html.EscapeString(customerName))
	return b.String()
}

// StatusUpdateEmail - письмо клиенту о смене статуса заказа
func StatusUpdateEmail(order *models.OrderData, to models.OrderStatus) (string, string) {
	subject := fmt.Sprintf("Обновление заказа %s", order.Number)
	message := statusMessages[to]
	if message == "" {
		message = string(to)
	}
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #e91e63;">Статус заказа изменён</h2>
		<p>Ваш заказ <strong>%s</strong> %s.</p>
		<p>Текущий статус: <strong>%s</strong></p>
		<p>Спасибо, что выбрали Dessert Shop!</p>
	</div>`, order.Number, message, to)
	return subject, body
}
