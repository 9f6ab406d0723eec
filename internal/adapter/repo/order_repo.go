package repo

import (
	"context"
	"errors"

	"github.com/example/shop-gateway/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresOrderRepo — доступ к внешней таблице orders витрины. Сервис пишет
// только status, shipping_courier и tracking_number; за status конкурирует
// с витриной, поэтому запись только через compare-and-swap.
type PostgresOrderRepo struct {
	Pool *pgxpool.Pool
}

func NewPostgresOrderRepo(pool *pgxpool.Pool) *PostgresOrderRepo {
	return &PostgresOrderRepo{Pool: pool}
}

func (r *PostgresOrderRepo) Status(ctx context.Context, orderID string) (domain.OrderStatus, bool, error) {
	var status string
	err := r.Pool.QueryRow(ctx, `SELECT status FROM orders WHERE id::text = $1`, orderID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return domain.OrderStatus(status), true, nil
}

func (r *PostgresOrderRepo) CompareAndSetStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `UPDATE orders SET status = $3
        WHERE id::text = $1 AND status = $2`, orderID, string(from), string(to))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresOrderRepo) SetShippingInfo(ctx context.Context, orderID, courier, awb string) error {
	_, err := r.Pool.Exec(ctx, `UPDATE orders SET
        shipping_courier = COALESCE(NULLIF($2,''), shipping_courier),
        tracking_number = COALESCE(NULLIF($3,''), tracking_number)
        WHERE id::text = $1`, orderID, courier, awb)
	return err
}

var _ domain.OrderRepository = (*PostgresOrderRepo)(nil)
