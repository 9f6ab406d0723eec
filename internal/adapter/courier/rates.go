package courier

import (
	"context"
	"net/http"

	"github.com/example/shop-gateway/internal/domain"
	"github.com/shopspring/decimal"
)

// GetRates — тарифы провайдера, нормализованные в domain.RateQuote.
// Порядок ответа провайдера сохраняется, пересортировки по цене нет.
func (c *Client) GetRates(ctx context.Context, req domain.RateRequest) ([]domain.RateQuote, error) {
	if c.Mock {
		return MockRates(), nil
	}
	status, raw, err := c.invoke(ctx, http.MethodPost, "/rates", rateBody(req))
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, providerError(status, raw)
	}
	return normalizeRates(raw)
}

func rateBody(req domain.RateRequest) map[string]any {
	p := req.Parcel
	body := map[string]any{
		"origin_postal_code":      req.Origin.Zipcode,
		"destination_postal_code": req.Destination.Zipcode,
		"items": []map[string]any{{
			"name":     itemName(p, ""),
			"value":    p.Value.InexactFloat64(),
			"weight":   clampMin1(p.WeightGrams),
			"length":   clampMin1(p.LengthCM),
			"width":    clampMin1(p.WidthCM),
			"height":   clampMin1(p.HeightCM),
			"quantity": 1,
		}},
	}
	if req.Origin.AreaID != "" {
		body["origin_area_id"] = req.Origin.AreaID
	}
	if req.Destination.AreaID != "" {
		body["destination_area_id"] = req.Destination.AreaID
	}
	return body
}

// clampMin1 — нулевые и отрицательные габариты невалидны для провайдера,
// поднимаем до единицы, а не отклоняем.
func clampMin1(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}

func itemName(p domain.Parcel, orderID string) string {
	if p.Description != "" {
		return p.Description
	}
	if orderID != "" {
		return "Order " + orderID
	}
	return "Parcel"
}

// rateEntry — одна запись тарифа в сыром виде: набор полей различается
// по курьерам, извлечение идёт по упорядоченным fallback-ключам.
type rateEntry map[string]any

func normalizeRates(raw []byte) ([]domain.RateQuote, error) {
	var envelope struct {
		Pricing []rateEntry `json:"pricing"`
		Rates   []rateEntry `json:"rates"`
	}
	var entries []rateEntry
	if err := jsonUnmarshal(raw, &envelope); err != nil {
		var arr []rateEntry
		if err2 := jsonUnmarshal(raw, &arr); err2 != nil {
			return nil, err
		}
		entries = arr
	} else {
		entries = envelope.Pricing
		if len(entries) == 0 {
			entries = envelope.Rates
		}
	}
	quotes := make([]domain.RateQuote, 0, len(entries))
	for _, e := range entries {
		q := domain.RateQuote{
			Carrier:     firstString(e, "courier_code", "courier_name", "carrier"),
			CourierID:   firstString(e, "courier_id", "courier_code"),
			Service:     firstString(e, "courier_service_name", "service_name", "service"),
			ServiceCode: firstString(e, "courier_service_code", "service_code"),
			ServiceID:   firstString(e, "courier_service_id", "courier_service_code"),
			Price:       firstDecimal(e, "price", "rate", "amount"),
			Currency:    firstString(e, "currency"),
			EtdDays:     firstString(e, "shipment_duration_range", "etd", "duration"),
		}
		if q.Currency == "" {
			q.Currency = "IDR"
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// MockRates — фиксированный детерминированный список для офлайн-режима.
func MockRates() []domain.RateQuote {
	return []domain.RateQuote{
		{Carrier: "jne", CourierID: "jne", Service: "REG", ServiceCode: "REG", ServiceID: "jne-reg",
			Price: decimal.NewFromInt(10000), Currency: "IDR", EtdDays: "1-2"},
		{Carrier: "jnt", CourierID: "jnt", Service: "EZ", ServiceCode: "EZ", ServiceID: "jnt-ez",
			Price: decimal.NewFromInt(9500), Currency: "IDR", EtdDays: "2-3"},
		{Carrier: "sicepat", CourierID: "sicepat", Service: "REG", ServiceCode: "REG", ServiceID: "sicepat-reg",
			Price: decimal.NewFromInt(9800), Currency: "IDR", EtdDays: "1-2"},
	}
}
