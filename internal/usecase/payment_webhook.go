package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/example/shop-gateway/internal/domain"
)

// ReconcilePaymentWebhook — идемпотентная сверка платёжного вебхука с
// локальной строкой платежа и статусом заказа. Все шаги best-effort:
// сбой одного не отменяет независимые остальные, провайдеру всегда
// отвечаем успехом, иначе он устроит шторм повторов.
type ReconcilePaymentWebhook struct {
	Payments domain.PaymentRepository
	Orders   domain.OrderRepository
	Events   domain.StatusPublisher
	Now      func() time.Time
}

func (uc ReconcilePaymentWebhook) Execute(ctx context.Context, payload, headers []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return domain.ErrValidation
	}
	sessionID := paymentRules.str(doc, "session_id")
	if sessionID == "" {
		return domain.ErrValidation
	}
	now := uc.now()
	status := strings.ToUpper(paymentRules.str(doc, "status"))
	orderID := orderIDFromReference(paymentRules.str(doc, "reference"))

	p, found, err := uc.Payments.FindByExternalID(ctx, sessionID)
	if err != nil {
		log.Printf("payment webhook %s: lookup: %v", sessionID, err)
		found = false
	}
	if !found {
		// вебхук пришёл раньше локальной записи об инвойсе — создаём строку
		p = domain.Payment{Provider: "xendit", SessionID: sessionID}
	}
	p.Status = status
	if amt := paymentRules.dec(doc, "amount"); !amt.IsZero() {
		p.Amount = amt
	}
	if v := paymentRules.str(doc, "currency"); v != "" {
		p.Currency = v
	}
	if v := paymentRules.str(doc, "method"); v != "" {
		p.PaymentMethod = v
	}
	if v := paymentRules.str(doc, "channel"); v != "" {
		p.PaymentChannel = v
	}
	if v := paymentRules.str(doc, "invoice_url"); v != "" {
		p.InvoiceURL = v
	}
	p.FailureCode = paymentRules.str(doc, "failure_code")
	p.FailureMessage = paymentRules.str(doc, "failure_message")
	if orderID != "" && p.OrderID == "" {
		p.OrderID = orderID
	}
	// терминальные отметки пишутся один раз; провайдер инвойс не "растерминаливает"
	switch status {
	case domain.PaymentStatusPaid, domain.PaymentStatusSettled:
		if p.PaidAt == nil {
			p.PaidAt = &now
		}
	case domain.PaymentStatusExpired:
		if p.ExpiredAt == nil {
			p.ExpiredAt = &now
		}
	case domain.PaymentStatusFailed:
		if p.FailedAt == nil {
			p.FailedAt = &now
		}
	}
	p.WebhookReceivedAt = &now
	p.WebhookHeaders = headers

	saved, err := uc.Payments.Upsert(ctx, p)
	if err != nil {
		log.Printf("payment webhook %s: upsert: %v", sessionID, err)
		saved = domain.Payment{}
	}

	if saved.ID != "" {
		inserted, err := uc.Payments.AppendEvent(ctx, domain.PaymentEvent{
			PaymentID:  saved.ID,
			EventType:  status,
			ExternalID: sessionID,
			Payload:    payload,
			Headers:    headers,
			ReceivedAt: now,
		})
		if err != nil {
			log.Printf("payment webhook %s: event append: %v", sessionID, err)
		} else if !inserted {
			log.Printf("payment webhook %s: duplicate delivery of %s", sessionID, status)
		}
	}

	if orderID == "" {
		orderID = saved.OrderID
	}
	if saved.ID != "" && orderID != "" {
		driver := orderDriver{Orders: uc.Orders, Events: uc.Events}
		switch status {
		case domain.PaymentStatusPaid, domain.PaymentStatusSettled:
			driver.apply(ctx, orderID, domain.EventPaymentPaid, "payment", now)
		case domain.PaymentStatusExpired:
			driver.apply(ctx, orderID, domain.EventPaymentExpired, "payment", now)
		case domain.PaymentStatusFailed:
			driver.apply(ctx, orderID, domain.EventPaymentFailed, "payment", now)
		}
	}
	return nil
}

func (uc ReconcilePaymentWebhook) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}
