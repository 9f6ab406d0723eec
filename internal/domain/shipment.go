package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Терминальные статусы курьера.
const (
	ShipmentStatusDelivered = "DELIVERED"
	ShipmentStatusCancelled = "CANCELLED"
)

// Shipment — отправление, одна строка на AWB.
type Shipment struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id,omitempty"`
	CourierName string `json:"courier_name,omitempty"`
	AWB         string `json:"awb,omitempty"`
	Status      string `json:"status"`
}

// ShipmentEvent — append-only журнал трекинг-вебхуков.
type ShipmentEvent struct {
	ID           string          `json:"id"`
	ShipmentID   string          `json:"shipment_id"`
	Status       string          `json:"status"`
	StatusDetail string          `json:"status_detail,omitempty"`
	ExternalID   string          `json:"external_id"`
	Payload      json.RawMessage `json:"payload"`
	ReceivedAt   time.Time       `json:"received_at"`
}

// Address — адрес отправителя или получателя. AreaID — внутренний
// геокод провайдера, не почтовый индекс.
type Address struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
	AreaID  string `json:"area_id,omitempty"`
}

// Parcel — габариты и объявленная ценность посылки.
type Parcel struct {
	WeightGrams float64         `json:"weight_grams"`
	LengthCM    float64         `json:"length_cm"`
	WidthCM     float64         `json:"width_cm"`
	HeightCM    float64         `json:"height_cm"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description,omitempty"`
}

// CreateShipmentRequest — запрос на создание отправления. Carrier/Service —
// свободный текст, желаемая пара курьер+тариф.
type CreateShipmentRequest struct {
	OrderID     string  `json:"order_id"`
	Carrier     string  `json:"carrier"`
	Service     string  `json:"service"`
	Destination Address `json:"destination"`
	Parcel      Parcel  `json:"parcel"`
}

// CreatedShipment — DTO ответа провайдера, не персистентная строка shipments.
type CreatedShipment struct {
	ID             string `json:"id"`
	TrackingNumber string `json:"tracking_number"`
	LabelURL       string `json:"label_url,omitempty"`
	Carrier        string `json:"carrier,omitempty"`
	Service        string `json:"service,omitempty"`
	Status         string `json:"status"`
}

// Area — результат поиска зоны доставки у провайдера.
type Area struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
