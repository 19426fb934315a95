package models

// PaymentStatus - статус оплаты заказа, управляется вебхуками провайдера
type PaymentStatus string

// Статусы оплаты
const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// paymentRank - линейный порядок статусов оплаты для защиты от
// повторных и опоздавших вебхуков: pending < processing < paid,
// failed и refunded - поглощающие, из них возврата нет.
var paymentRank = map[PaymentStatus]int{
	PaymentStatusPending:    0,
	PaymentStatusProcessing: 1,
	PaymentStatusPaid:       2,
	PaymentStatusFailed:     3,
	PaymentStatusRefunded:   3,
}

// Before - проверяет, что статус s строго раньше статуса other в линейном
// порядке. Событие применяется только если текущий статус раньше целевого.
func (s PaymentStatus) Before(other PaymentStatus) bool {
	return paymentRank[s] < paymentRank[other]
}

// Типы событий платёжного провайдера
const (
	PaymentEventWaitingForCapture = "payment.waiting_for_capture"
	PaymentEventSucceeded         = "payment.succeeded"
	PaymentEventCanceled          = "payment.canceled"
	PaymentEventRefundSucceeded   = "refund.succeeded"
)

// WebhookRequest - модель тела вебхука провайдера
type WebhookRequest struct {
	Event  string        `json:"event"`
	Object WebhookObject `json:"object"`
}

// WebhookObject - объект платежа из тела вебхука
type WebhookObject struct {
	ID string `json:"id"`
}
