package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/example/shop-gateway/internal/domain"
)

// ResolveCourier — подбор идентификаторов курьера и тарифа по свежему
// списку тарифов. Список запрашивается заново на каждый вызов:
// идентификаторы привязаны к сессии провайдера и не переживают её.
type ResolveCourier struct {
	Gateway domain.ShipmentGateway
}

// Execute не возвращает ошибку: сбой получения тарифов логируется, а
// создание отправления продолжается без идентификаторов — блокировать
// чекаут из-за метаданных курьера нельзя.
func (uc ResolveCourier) Execute(ctx context.Context, req domain.RateRequest, carrier, service string) domain.CourierSelection {
	quotes, err := uc.Gateway.GetRates(ctx, req)
	if err != nil {
		log.Printf("resolve courier %s/%s: rate fetch: %v", carrier, service, err)
		return domain.CourierSelection{}
	}
	// точное совпадение: курьер равен, сервис равен имени или коду тарифа
	for _, q := range quotes {
		if strings.EqualFold(q.Carrier, carrier) &&
			(strings.EqualFold(q.Service, service) || strings.EqualFold(q.ServiceCode, service)) {
			return domain.CourierSelection{CourierID: q.CourierID, ServiceID: q.ServiceID}
		}
	}
	// fallback: первый тариф нужного курьера, сервис игнорируется
	for _, q := range quotes {
		if strings.EqualFold(q.Carrier, carrier) {
			return domain.CourierSelection{CourierID: q.CourierID, ServiceID: q.ServiceID}
		}
	}
	return domain.CourierSelection{}
}
