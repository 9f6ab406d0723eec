package usecase

import (
	"context"
	"log"

	"github.com/example/shop-gateway/internal/domain"
)

// CreateShipment — двухфазное создание отправления: резолв идентификаторов
// (только чтение, побочных эффектов у провайдера нет), затем вызов создания.
// Отката между фазами нет и не требуется.
type CreateShipment struct {
	Resolver  ResolveCourier
	Gateway   domain.ShipmentGateway
	Shipments domain.ShipmentRepository
	Origin    domain.Address
}

func (uc CreateShipment) Execute(ctx context.Context, req domain.CreateShipmentRequest) (domain.CreatedShipment, error) {
	if req.OrderID == "" {
		return domain.CreatedShipment{}, domain.ErrValidation
	}
	sel := uc.Resolver.Execute(ctx, domain.RateRequest{
		Origin:      uc.Origin,
		Destination: req.Destination,
		Parcel:      req.Parcel,
	}, req.Carrier, req.Service)

	created, err := uc.Gateway.CreateShipment(ctx, sel, req)
	if err != nil {
		return domain.CreatedShipment{}, err
	}

	if uc.Shipments != nil {
		_, err := uc.Shipments.Upsert(ctx, domain.Shipment{
			OrderID:     req.OrderID,
			CourierName: created.Carrier,
			AWB:         created.TrackingNumber,
			Status:      created.Status,
		})
		if err != nil {
			// строка появится при первом трекинг-вебхуке
			log.Printf("create shipment %s: persist: %v", req.OrderID, err)
		}
	}
	return created, nil
}
