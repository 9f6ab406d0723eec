package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Терминальные статусы платёжного провайдера (в верхнем регистре, как в вебхуке).
const (
	PaymentStatusPaid    = "PAID"
	PaymentStatusSettled = "SETTLED"
	PaymentStatusExpired = "EXPIRED"
	PaymentStatusFailed  = "FAILED"
)

// Payment — платёжная сессия, одна строка на инвойс провайдера.
// SessionID равен внешнему идентификатору инвойса; по нему строка уникальна.
type Payment struct {
	ID                string          `json:"id"`
	OrderID           string          `json:"order_id,omitempty"` // пусто = не распознан
	Provider          string          `json:"provider"`
	SessionID         string          `json:"session_id"`
	Status            string          `json:"status"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	PaymentMethod     string          `json:"payment_method,omitempty"`
	PaymentChannel    string          `json:"payment_channel,omitempty"`
	InvoiceURL        string          `json:"invoice_url,omitempty"`
	FailureCode       string          `json:"failure_code,omitempty"`
	FailureMessage    string          `json:"failure_message,omitempty"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	ExpiredAt         *time.Time      `json:"expired_at,omitempty"`
	FailedAt          *time.Time      `json:"failed_at,omitempty"`
	WebhookReceivedAt *time.Time      `json:"webhook_received_at,omitempty"`
	WebhookHeaders    json.RawMessage `json:"webhook_headers,omitempty"`
}

// PaymentEvent — append-only журнал доставок вебхука, одна строка на доставку.
type PaymentEvent struct {
	ID         string          `json:"id"`
	PaymentID  string          `json:"payment_id"`
	EventType  string          `json:"event_type"`
	ExternalID string          `json:"external_id"`
	Payload    json.RawMessage `json:"payload"`
	Headers    json.RawMessage `json:"headers,omitempty"`
	ReceivedAt time.Time       `json:"received_at"`
}

// CreateInvoiceRequest — запрос витрины на выставление инвойса.
type CreateInvoiceRequest struct {
	OrderID     string          `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	PayerEmail  string          `json:"payer_email,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Invoice — ответ платёжного шлюза на создание/чтение инвойса.
type Invoice struct {
	ID         string          `json:"id"`
	ExternalID string          `json:"external_id"`
	Status     string          `json:"status"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	InvoiceURL string          `json:"invoice_url,omitempty"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
}
