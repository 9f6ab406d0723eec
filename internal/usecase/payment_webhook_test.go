package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/example/shop-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func paymentUC(payments *fakePaymentRepo, orders *fakeOrderRepo, pub *fakePublisher) ReconcilePaymentWebhook {
	uc := ReconcilePaymentWebhook{Payments: payments, Orders: orders, Now: fixedNow}
	if pub != nil {
		uc.Events = pub
	}
	return uc
}

func TestPaymentWebhookPaid(t *testing.T) {
	payments := newFakePaymentRepo()
	orders := newFakeOrderRepo(map[string]domain.OrderStatus{"42": domain.OrderPending})
	pub := &fakePublisher{}
	uc := paymentUC(payments, orders, pub)

	payload := []byte(`{"id":"inv_1","external_id":"order-42","status":"PAID","amount":100000,"payment_method":"EWALLET","ewallet_type":"OVO"}`)
	require.NoError(t, uc.Execute(context.Background(), payload, []byte(`{"x-callback-token":["t"]}`)))

	p, ok := payments.bySession("inv_1")
	require.True(t, ok)
	assert.Equal(t, "42", p.OrderID)
	assert.Equal(t, "PAID", p.Status)
	assert.Equal(t, "EWALLET", p.PaymentMethod)
	assert.Equal(t, "OVO", p.PaymentChannel)
	require.NotNil(t, p.PaidAt)
	assert.Equal(t, fixedNow(), *p.PaidAt)
	assert.Nil(t, p.ExpiredAt)
	assert.Nil(t, p.FailedAt)

	assert.Equal(t, domain.OrderPaid, orders.statuses["42"])
	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.OrderPaid, pub.events[0].Status)
	assert.Equal(t, "payment", pub.events[0].Source)
}

func TestPaymentWebhookExpiredCancelsOrder(t *testing.T) {
	for _, status := range []string{"EXPIRED", "FAILED"} {
		t.Run(status, func(t *testing.T) {
			payments := newFakePaymentRepo()
			orders := newFakeOrderRepo(map[string]domain.OrderStatus{"7": domain.OrderPending})
			uc := paymentUC(payments, orders, nil)

			payload := []byte(`{"id":"inv_7","external_id":"order-7","status":"` + status + `","amount":5000}`)
			require.NoError(t, uc.Execute(context.Background(), payload, nil))
			assert.Equal(t, domain.OrderCancelled, orders.statuses["7"])
		})
	}
}

func TestPaymentWebhookDuplicateDelivery(t *testing.T) {
	payments := newFakePaymentRepo()
	orders := newFakeOrderRepo(map[string]domain.OrderStatus{"42": domain.OrderPending})
	uc := paymentUC(payments, orders, nil)

	payload := []byte(`{"id":"inv_1","external_id":"order-42","status":"PAID","amount":100000}`)
	require.NoError(t, uc.Execute(context.Background(), payload, nil))
	firstPaidAt := mustPayment(t, payments, "inv_1").PaidAt

	require.NoError(t, uc.Execute(context.Background(), payload, nil))

	assert.Len(t, payments.rows, 1, "duplicate delivery must not create a second row")
	assert.Len(t, payments.events, 1, "duplicate event append must be rejected")
	p := mustPayment(t, payments, "inv_1")
	assert.Equal(t, firstPaidAt, p.PaidAt, "paid_at is write-once")
	assert.Equal(t, domain.OrderPaid, orders.statuses["42"])
}

func TestPaymentWebhookCreatesRowWhenUnknown(t *testing.T) {
	payments := newFakePaymentRepo()
	uc := paymentUC(payments, newFakeOrderRepo(nil), nil)

	// вебхук раньше локального инвойса, ссылка без префикса order-
	payload := []byte(`{"id":"inv_9","external_id":"legacy-ref","status":"PAID","amount":1000}`)
	require.NoError(t, uc.Execute(context.Background(), payload, nil))

	p, ok := payments.bySession("inv_9")
	require.True(t, ok)
	assert.Empty(t, p.OrderID, "unparseable reference leaves order unresolved")
	require.NotNil(t, p.PaidAt)
}

func TestPaymentWebhookSettledBySessionOnly(t *testing.T) {
	payments := newFakePaymentRepo()
	orders := newFakeOrderRepo(map[string]domain.OrderStatus{"42": domain.OrderPending})
	uc := paymentUC(payments, orders, nil)

	// order_id восстанавливается из ранее созданной строки платежа
	_, err := payments.Upsert(context.Background(), domain.Payment{
		Provider: "xendit", SessionID: "inv_1", OrderID: "42", Status: "PENDING",
	})
	require.NoError(t, err)

	payload := []byte(`{"id":"inv_1","status":"SETTLED","amount":100000}`)
	require.NoError(t, uc.Execute(context.Background(), payload, nil))
	assert.Equal(t, domain.OrderPaid, orders.statuses["42"])
}

func TestPaymentWebhookTerminalOrderUntouched(t *testing.T) {
	payments := newFakePaymentRepo()
	orders := newFakeOrderRepo(map[string]domain.OrderStatus{"42": domain.OrderCancelled})
	uc := paymentUC(payments, orders, nil)

	payload := []byte(`{"id":"inv_1","external_id":"order-42","status":"PAID","amount":100000}`)
	require.NoError(t, uc.Execute(context.Background(), payload, nil))
	assert.Equal(t, domain.OrderCancelled, orders.statuses["42"])
}

func TestPaymentWebhookMalformedPayload(t *testing.T) {
	uc := paymentUC(newFakePaymentRepo(), newFakeOrderRepo(nil), nil)
	assert.ErrorIs(t, uc.Execute(context.Background(), []byte(`not json`), nil), domain.ErrValidation)
	assert.ErrorIs(t, uc.Execute(context.Background(), []byte(`{"status":"PAID"}`), nil), domain.ErrValidation)
}

func mustPayment(t *testing.T, payments *fakePaymentRepo, sessionID string) domain.Payment {
	t.Helper()
	p, ok := payments.bySession(sessionID)
	require.True(t, ok)
	return p
}
