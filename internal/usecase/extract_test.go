package usecase

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, raw string) map[string]any {
	t.Helper()
	var d map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	return d
}

func TestPaymentRulesFallbackOrder(t *testing.T) {
	d := doc(t, `{"id":"inv_1","external_id":"order-42","payment_method_type":"VA","bank_code":"BCA"}`)

	assert.Equal(t, "inv_1", paymentRules.str(d, "session_id"), "id wins over external_id")
	assert.Equal(t, "order-42", paymentRules.str(d, "reference"), "external_id wins for the order reference")
	assert.Equal(t, "VA", paymentRules.str(d, "method"), "payment_method_type is the fallback key")
	assert.Equal(t, "BCA", paymentRules.str(d, "channel"))

	d2 := doc(t, `{"external_id":"order-7","payment_method":"EWALLET"}`)
	assert.Equal(t, "order-7", paymentRules.str(d2, "session_id"))
	assert.Equal(t, "EWALLET", paymentRules.str(d2, "method"))
}

func TestExtractDecimal(t *testing.T) {
	d := doc(t, `{"amount":100000}`)
	assert.True(t, paymentRules.dec(d, "amount").Equal(decimal.NewFromInt(100000)))

	d2 := doc(t, `{"paid_amount":"2500.50"}`)
	assert.True(t, paymentRules.dec(d2, "amount").Equal(decimal.RequireFromString("2500.50")))

	assert.True(t, paymentRules.dec(doc(t, `{}`), "amount").IsZero())
}

func TestShipmentRulesFallbackOrder(t *testing.T) {
	d := doc(t, `{"waybill_id":"AWB1","courier_code":"jne","reference_id":"42"}`)
	assert.Equal(t, "AWB1", shipmentRules.str(d, "external_id"))
	assert.Equal(t, "AWB1", shipmentRules.str(d, "awb"))
	assert.Equal(t, "jne", shipmentRules.str(d, "courier"))
	assert.Equal(t, "42", shipmentRules.str(d, "order_id"))
}

func TestOrderIDFromReference(t *testing.T) {
	assert.Equal(t, "42", orderIDFromReference("order-42"))
	assert.Equal(t, "", orderIDFromReference("ref-42"))
	assert.Equal(t, "", orderIDFromReference("order-"))
	assert.Equal(t, "", orderIDFromReference(""))
}
