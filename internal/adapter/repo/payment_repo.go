package repo

import (
	"context"
	"errors"

	"github.com/example/shop-gateway/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresPaymentRepo struct {
	Pool *pgxpool.Pool
}

func NewPostgresPaymentRepo(pool *pgxpool.Pool) *PostgresPaymentRepo {
	return &PostgresPaymentRepo{Pool: pool}
}

const paymentColumns = `id, COALESCE(order_id,''), provider, session_id, status, amount, currency,
payment_method, payment_channel, invoice_url, failure_code, failure_message,
paid_at, expired_at, failed_at, webhook_received_at, COALESCE(webhook_headers,'null'::jsonb)`

// FindByExternalID — двойной ключ: session_id или локальный id.
func (r *PostgresPaymentRepo) FindByExternalID(ctx context.Context, externalID string) (domain.Payment, bool, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments
        WHERE session_id = $1 OR id::text = $1`, externalID)
	p, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Payment{}, false, nil
	}
	if err != nil {
		return domain.Payment{}, false, err
	}
	return p, true, nil
}

// Upsert: при заполненном p.ID обновляется конкретная строка (легаси-совпадение
// по id); иначе атомарная вставка-или-обновление по уникальному session_id —
// конкурентные доставки одного вебхука не создают вторую строку.
// paid_at/expired_at/failed_at пишутся один раз и не затираются.
func (r *PostgresPaymentRepo) Upsert(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	if p.ID != "" {
		row := r.Pool.QueryRow(ctx, `UPDATE payments SET
            order_id = COALESCE(NULLIF($2,''), order_id),
            status = $3, amount = $4, currency = $5,
            payment_method = $6, payment_channel = $7, invoice_url = $8,
            failure_code = $9, failure_message = $10,
            paid_at = COALESCE(paid_at, $11),
            expired_at = COALESCE(expired_at, $12),
            failed_at = COALESCE(failed_at, $13),
            webhook_received_at = $14, webhook_headers = $15,
            updated_at = now()
        WHERE id = $1
        RETURNING `+paymentColumns,
			p.ID, p.OrderID, p.Status, p.Amount, p.Currency,
			p.PaymentMethod, p.PaymentChannel, p.InvoiceURL,
			p.FailureCode, p.FailureMessage,
			p.PaidAt, p.ExpiredAt, p.FailedAt,
			p.WebhookReceivedAt, p.WebhookHeaders)
		return scanPayment(row)
	}

	row := r.Pool.QueryRow(ctx, `INSERT INTO payments
        (id, order_id, provider, session_id, status, amount, currency,
         payment_method, payment_channel, invoice_url, failure_code, failure_message,
         paid_at, expired_at, failed_at, webhook_received_at, webhook_headers)
        VALUES ($1, NULLIF($2,''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
        ON CONFLICT (session_id) DO UPDATE SET
            order_id = COALESCE(payments.order_id, EXCLUDED.order_id),
            status = EXCLUDED.status,
            amount = EXCLUDED.amount,
            currency = EXCLUDED.currency,
            payment_method = EXCLUDED.payment_method,
            payment_channel = EXCLUDED.payment_channel,
            invoice_url = EXCLUDED.invoice_url,
            failure_code = EXCLUDED.failure_code,
            failure_message = EXCLUDED.failure_message,
            paid_at = COALESCE(payments.paid_at, EXCLUDED.paid_at),
            expired_at = COALESCE(payments.expired_at, EXCLUDED.expired_at),
            failed_at = COALESCE(payments.failed_at, EXCLUDED.failed_at),
            webhook_received_at = EXCLUDED.webhook_received_at,
            webhook_headers = EXCLUDED.webhook_headers,
            updated_at = now()
        RETURNING `+paymentColumns,
		uuid.NewString(), p.OrderID, providerOr(p.Provider), p.SessionID,
		p.Status, p.Amount, p.Currency,
		p.PaymentMethod, p.PaymentChannel, p.InvoiceURL,
		p.FailureCode, p.FailureMessage,
		p.PaidAt, p.ExpiredAt, p.FailedAt,
		p.WebhookReceivedAt, p.WebhookHeaders)
	return scanPayment(row)
}

// AppendEvent — журнал append-only; false = дубликат доставки
// (сработал уникальный ключ).
func (r *PostgresPaymentRepo) AppendEvent(ctx context.Context, ev domain.PaymentEvent) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `INSERT INTO payment_events
        (id, payment_id, event_type, external_id, payload, headers, received_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (payment_id, external_id, event_type) DO NOTHING`,
		uuid.NewString(), ev.PaymentID, ev.EventType, ev.ExternalID,
		ev.Payload, ev.Headers, ev.ReceivedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.Provider, &p.SessionID, &p.Status,
		&p.Amount, &p.Currency, &p.PaymentMethod, &p.PaymentChannel,
		&p.InvoiceURL, &p.FailureCode, &p.FailureMessage,
		&p.PaidAt, &p.ExpiredAt, &p.FailedAt,
		&p.WebhookReceivedAt, &p.WebhookHeaders)
	return p, err
}

func providerOr(p string) string {
	if p == "" {
		return "xendit"
	}
	return p
}

var _ domain.PaymentRepository = (*PostgresPaymentRepo)(nil)
