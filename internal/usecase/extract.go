package usecase

import (
	"strings"

	"github.com/shopspring/decimal"
)

// extractRules — явные правила извлечения полей из слабо типизированного
// payload провайдера: порядок ключей и есть порядок fallback'ов.
type extractRules map[string][]string

var paymentRules = extractRules{
	"session_id":      {"id", "external_id"},
	"reference":       {"external_id", "id"},
	"status":          {"status"},
	"amount":          {"amount", "paid_amount"},
	"currency":        {"currency"},
	"method":          {"payment_method", "payment_method_type"},
	"channel":         {"payment_channel", "bank_code", "ewallet_type"},
	"invoice_url":     {"invoice_url"},
	"failure_code":    {"failure_code"},
	"failure_message": {"failure_message", "failure_reason"},
}

var shipmentRules = extractRules{
	"external_id":   {"shipment_id", "id", "awb", "waybill_id"},
	"awb":           {"awb", "waybill_id", "tracking_number"},
	"courier":       {"courier", "courier_code", "carrier"},
	"status":        {"status"},
	"status_detail": {"status_detail", "note", "description"},
	"order_id":      {"order_id", "reference_id", "reference_number"},
}

func (r extractRules) str(doc map[string]any, field string) string {
	for _, key := range r[field] {
		if s, ok := doc[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func (r extractRules) dec(doc map[string]any, field string) decimal.Decimal {
	for _, key := range r[field] {
		switch v := doc[key].(type) {
		case float64:
			return decimal.NewFromFloat(v)
		case string:
			if d, err := decimal.NewFromString(v); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}

// orderIDFromReference — id заказа восстанавливается только из ссылки
// с литеральным префиксом "order-"; иначе заказ считается нераспознанным.
func orderIDFromReference(ref string) string {
	if rest, ok := strings.CutPrefix(ref, "order-"); ok && rest != "" {
		return rest
	}
	return ""
}
