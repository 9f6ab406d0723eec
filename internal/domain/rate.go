package domain

import "github.com/shopspring/decimal"

// RateQuote — каноническая форма тарифа, в которую нормализуются
// разнородные ответы провайдера. Порядок списка сохраняется как у провайдера.
type RateQuote struct {
	Carrier     string          `json:"carrier"`
	CourierID   string          `json:"courier_id,omitempty"`
	Service     string          `json:"service"`
	ServiceCode string          `json:"service_code,omitempty"`
	ServiceID   string          `json:"service_id,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	EtdDays     string          `json:"etd_days,omitempty"`
}

// RateRequest — запрос тарифов: адреса и посылка.
type RateRequest struct {
	Origin      Address `json:"origin"`
	Destination Address `json:"destination"`
	Parcel      Parcel  `json:"parcel"`
}

// CourierSelection — идентификаторы курьера и тарифа в рамках сессии
// провайдера. Нулевое значение допустимо: создание отправления идёт
// без идентификаторов, провайдер выбирает сам.
type CourierSelection struct {
	CourierID string `json:"courier_id,omitempty"`
	ServiceID string `json:"courier_service_id,omitempty"`
}

// IsZero сообщает, что резолвер ничего не подобрал.
func (s CourierSelection) IsZero() bool { return s.CourierID == "" && s.ServiceID == "" }
