package usecase

import (
	"context"
	"log"

	"github.com/example/shop-gateway/internal/domain"
)

// CreateInvoice — выставить инвойс у провайдера и завести локальную
// платёжную сессию под будущий вебхук.
type CreateInvoice struct {
	Gateway  domain.InvoiceGateway
	Payments domain.PaymentRepository
}

func (uc CreateInvoice) Execute(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	if req.OrderID == "" || !req.Amount.IsPositive() {
		return domain.Invoice{}, domain.ErrValidation
	}
	inv, err := uc.Gateway.CreateInvoice(ctx, req)
	if err != nil {
		return domain.Invoice{}, err
	}
	status := inv.Status
	if status == "" {
		status = "PENDING"
	}
	_, err = uc.Payments.Upsert(ctx, domain.Payment{
		Provider:   "xendit",
		SessionID:  inv.ID,
		OrderID:    req.OrderID,
		Status:     status,
		Amount:     inv.Amount,
		Currency:   inv.Currency,
		InvoiceURL: inv.InvoiceURL,
	})
	if err != nil {
		// вебхук создаст строку сам, инвойс у провайдера уже есть
		log.Printf("create invoice %s: persist: %v", inv.ID, err)
	}
	return inv, nil
}

// GetInvoice — чтение состояния инвойса у провайдера.
type GetInvoice struct {
	Gateway domain.InvoiceGateway
}

func (uc GetInvoice) Execute(ctx context.Context, id string) (domain.Invoice, error) {
	if id == "" {
		return domain.Invoice{}, domain.ErrValidation
	}
	return uc.Gateway.GetInvoice(ctx, id)
}
