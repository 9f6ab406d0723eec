package domain

import "time"

// OrderStatus — статус заказа витрины. Таблица orders принадлежит витрине,
// сервис пишет только status и поля доставки.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// IsTerminal — из completed и cancelled переходов нет.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// OrderEvent — событие провайдера, поданное на вход машине статусов.
type OrderEvent string

const (
	EventPaymentPaid       OrderEvent = "payment.paid"
	EventPaymentExpired    OrderEvent = "payment.expired"
	EventPaymentFailed     OrderEvent = "payment.failed"
	EventShipmentProgress  OrderEvent = "shipment.progress"
	EventShipmentDelivered OrderEvent = "shipment.delivered"
	EventShipmentCancelled OrderEvent = "shipment.cancelled"
)

// NextOrderStatus — чистая функция перехода: (текущий статус, событие) ->
// (новый статус, есть ли переход). Терминальные статусы не покидаются.
func NextOrderStatus(cur OrderStatus, ev OrderEvent) (OrderStatus, bool) {
	if cur.IsTerminal() {
		return cur, false
	}
	switch ev {
	case EventPaymentPaid:
		if cur == OrderPending {
			return OrderPaid, true
		}
	case EventPaymentExpired, EventPaymentFailed:
		if cur == OrderPending {
			return OrderCancelled, true
		}
	case EventShipmentProgress:
		if cur == OrderPending || cur == OrderPaid {
			return OrderShipped, true
		}
	case EventShipmentDelivered:
		return OrderCompleted, true
	case EventShipmentCancelled:
		return OrderCancelled, true
	}
	return cur, false
}

// OrderStatusEvent — уведомление о смене статуса, публикуемое для витрины.
type OrderStatusEvent struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
	Source  string      `json:"source"`
	At      time.Time   `json:"at"`
}
