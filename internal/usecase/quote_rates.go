package usecase

import (
	"context"

	"github.com/example/shop-gateway/internal/domain"
)

// QuoteRates — тарифы для чекаута; адрес отправителя подставляется из
// конфигурации, если не передан.
type QuoteRates struct {
	Gateway domain.ShipmentGateway
	Origin  domain.Address
}

func (uc QuoteRates) Execute(ctx context.Context, req domain.RateRequest) ([]domain.RateQuote, error) {
	if req.Origin == (domain.Address{}) {
		req.Origin = uc.Origin
	}
	return uc.Gateway.GetRates(ctx, req)
}
