package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/example/shop-gateway/internal/domain"
)

// ReconcileShipmentWebhook — сверка трекинг-вебхука курьера: upsert
// отправления по awb/id, журнал событий, перевод заказа. Неизвестный
// статус курьера трактуется как "в пути" (см. shipmentOrderEvent).
type ReconcileShipmentWebhook struct {
	Shipments domain.ShipmentRepository
	Orders    domain.OrderRepository
	Events    domain.StatusPublisher
	Now       func() time.Time
}

func (uc ReconcileShipmentWebhook) Execute(ctx context.Context, payload []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return domain.ErrValidation
	}
	externalID := shipmentRules.str(doc, "external_id")
	awb := shipmentRules.str(doc, "awb")
	if externalID == "" && awb == "" {
		return domain.ErrValidation
	}
	now := uc.now()
	courier := shipmentRules.str(doc, "courier")
	status := strings.ToUpper(shipmentRules.str(doc, "status"))
	statusDetail := shipmentRules.str(doc, "status_detail")
	orderID := shipmentRules.str(doc, "order_id")
	if v := orderIDFromReference(orderID); v != "" {
		orderID = v
	}

	s, found, err := uc.Shipments.FindByExternalID(ctx, awb, externalID)
	if err != nil {
		log.Printf("shipment webhook %s: lookup: %v", externalID, err)
		found = false
	}
	if !found {
		s = domain.Shipment{}
	}
	s.Status = status
	if awb != "" {
		s.AWB = awb
	}
	if courier != "" {
		s.CourierName = courier
	}
	if orderID != "" && s.OrderID == "" {
		s.OrderID = orderID
	}

	saved, err := uc.Shipments.Upsert(ctx, s)
	if err != nil {
		log.Printf("shipment webhook %s: upsert: %v", externalID, err)
		saved = domain.Shipment{}
	}

	if saved.ID != "" {
		evExternalID := externalID
		if evExternalID == "" {
			evExternalID = awb
		}
		inserted, err := uc.Shipments.AppendEvent(ctx, domain.ShipmentEvent{
			ShipmentID:   saved.ID,
			Status:       status,
			StatusDetail: statusDetail,
			ExternalID:   evExternalID,
			Payload:      payload,
			ReceivedAt:   now,
		})
		if err != nil {
			log.Printf("shipment webhook %s: event append: %v", externalID, err)
		} else if !inserted {
			log.Printf("shipment webhook %s: duplicate delivery of %s", externalID, status)
		}
	}

	if orderID == "" {
		orderID = saved.OrderID
	}
	if orderID != "" {
		// курьер и трек-номер пишутся на заказ при любом статусе
		if err := uc.Orders.SetShippingInfo(ctx, orderID, saved.CourierName, saved.AWB); err != nil {
			log.Printf("shipment webhook %s: shipping info: %v", externalID, err)
		}
		driver := orderDriver{Orders: uc.Orders, Events: uc.Events}
		driver.apply(ctx, orderID, shipmentOrderEvent(status), "shipment", now)
	}
	return nil
}

// shipmentOrderEvent — DELIVERED и CANCELLED терминальны, всё остальное
// считается движением посылки.
func shipmentOrderEvent(status string) domain.OrderEvent {
	switch status {
	case domain.ShipmentStatusDelivered:
		return domain.EventShipmentDelivered
	case domain.ShipmentStatusCancelled:
		return domain.EventShipmentCancelled
	default:
		return domain.EventShipmentProgress
	}
}

func (uc ReconcileShipmentWebhook) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}
