package domain

import (
	"context"
	"fmt"
)

// PaymentRepository — порт персистентности платежей.
type PaymentRepository interface {
	// FindByExternalID ищет по session_id ИЛИ по локальному id (двойной ключ
	// для обратной совместимости).
	FindByExternalID(ctx context.Context, externalID string) (Payment, bool, error)
	// Upsert атомарно вставляет или обновляет строку по session_id;
	// при заполненном p.ID обновляет строку по id. Возвращает итоговую строку.
	Upsert(ctx context.Context, p Payment) (Payment, error)
	// AppendEvent дописывает событие в журнал; false = уже обработано
	// (дубликат доставки).
	AppendEvent(ctx context.Context, ev PaymentEvent) (bool, error)
}

// ShipmentRepository — порт персистентности отправлений.
type ShipmentRepository interface {
	// FindByExternalID ищет по awb ИЛИ по локальному id.
	FindByExternalID(ctx context.Context, awb, externalID string) (Shipment, bool, error)
	Upsert(ctx context.Context, s Shipment) (Shipment, error)
	AppendEvent(ctx context.Context, ev ShipmentEvent) (bool, error)
}

// OrderRepository — порт к внешней таблице orders. Запись только через
// compare-and-swap: конкурирует с витриной за поле status.
type OrderRepository interface {
	Status(ctx context.Context, orderID string) (OrderStatus, bool, error)
	// CompareAndSetStatus: false = статус уже не from, переход проигран.
	CompareAndSetStatus(ctx context.Context, orderID string, from, to OrderStatus) (bool, error)
	SetShippingInfo(ctx context.Context, orderID, courier, awb string) error
}

// ShipmentGateway — порт курьерского шлюза.
type ShipmentGateway interface {
	GetRates(ctx context.Context, req RateRequest) ([]RateQuote, error)
	CreateShipment(ctx context.Context, sel CourierSelection, req CreateShipmentRequest) (CreatedShipment, error)
	SearchAreas(ctx context.Context, query string) ([]Area, error)
}

// InvoiceGateway — порт платёжного шлюза.
type InvoiceGateway interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	GetInvoice(ctx context.Context, id string) (Invoice, error)
}

// StatusPublisher — порт публикации смен статуса заказа для витрины.
type StatusPublisher interface {
	PublishOrderStatus(ctx context.Context, ev OrderStatusEvent) error
}

// Общие доменные ошибки
var (
	ErrNotFound      = notFoundError("not found")
	ErrValidation    = validationError("invalid data")
	ErrNotConfigured = configError("provider not configured")
)

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

type validationError string

func (e validationError) Error() string { return string(e) }

type configError string

func (e configError) Error() string { return string(e) }

// ProviderError — развёрнутая ошибка вышестоящего провайдера:
// сообщение приведено к человекочитаемому виду, HTTP-статус сохранён.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider: %s (status %d)", e.Message, e.StatusCode)
}
