package usecase

import (
	"context"
	"log"
	"time"

	"github.com/example/shop-gateway/internal/domain"
)

// orderDriver — применение события провайдера к заказу: чистый переход
// через domain.NextOrderStatus, запись через compare-and-swap, затем
// best-effort публикация смены статуса для витрины.
type orderDriver struct {
	Orders domain.OrderRepository
	Events domain.StatusPublisher
}

func (d orderDriver) apply(ctx context.Context, orderID string, ev domain.OrderEvent, source string, now time.Time) {
	cur, found, err := d.Orders.Status(ctx, orderID)
	if err != nil {
		log.Printf("order %s: status read: %v", orderID, err)
		return
	}
	if !found {
		log.Printf("order %s: not found, event %s dropped", orderID, ev)
		return
	}
	next, ok := domain.NextOrderStatus(cur, ev)
	if !ok {
		return
	}
	swapped, err := d.Orders.CompareAndSetStatus(ctx, orderID, cur, next)
	if err != nil {
		log.Printf("order %s: status update: %v", orderID, err)
		return
	}
	if !swapped {
		// конкурирующий писатель успел раньше; повторов нет
		log.Printf("order %s: lost status race %s -> %s", orderID, cur, next)
		return
	}
	if d.Events != nil {
		e := domain.OrderStatusEvent{OrderID: orderID, Status: next, Source: source, At: now}
		if err := d.Events.PublishOrderStatus(ctx, e); err != nil {
			log.Printf("order %s: publish status: %v", orderID, err)
		}
	}
}
