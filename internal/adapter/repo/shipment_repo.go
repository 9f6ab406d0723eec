package repo

import (
	"context"
	"errors"

	"github.com/example/shop-gateway/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresShipmentRepo struct {
	Pool *pgxpool.Pool
}

func NewPostgresShipmentRepo(pool *pgxpool.Pool) *PostgresShipmentRepo {
	return &PostgresShipmentRepo{Pool: pool}
}

const shipmentColumns = `id, COALESCE(order_id,''), courier_name, awb, status`

// FindByExternalID — двойной ключ: awb или локальный id.
func (r *PostgresShipmentRepo) FindByExternalID(ctx context.Context, awb, externalID string) (domain.Shipment, bool, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+shipmentColumns+` FROM shipments
        WHERE (awb <> '' AND awb = $1) OR id::text = $2`, awb, externalID)
	s, err := scanShipment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Shipment{}, false, nil
	}
	if err != nil {
		return domain.Shipment{}, false, err
	}
	return s, true, nil
}

// Upsert: по id для найденных строк, по уникальному awb для новых.
// Без awb возможна только простая вставка.
func (r *PostgresShipmentRepo) Upsert(ctx context.Context, s domain.Shipment) (domain.Shipment, error) {
	if s.ID != "" {
		row := r.Pool.QueryRow(ctx, `UPDATE shipments SET
            order_id = COALESCE(NULLIF($2,''), order_id),
            courier_name = COALESCE(NULLIF($3,''), courier_name),
            awb = COALESCE(NULLIF($4,''), awb),
            status = $5, updated_at = now()
        WHERE id = $1
        RETURNING `+shipmentColumns,
			s.ID, s.OrderID, s.CourierName, s.AWB, s.Status)
		return scanShipment(row)
	}
	if s.AWB != "" {
		row := r.Pool.QueryRow(ctx, `INSERT INTO shipments
            (id, order_id, courier_name, awb, status)
            VALUES ($1, NULLIF($2,''), $3, $4, $5)
            ON CONFLICT (awb) WHERE awb <> '' DO UPDATE SET
                order_id = COALESCE(shipments.order_id, EXCLUDED.order_id),
                courier_name = COALESCE(NULLIF(EXCLUDED.courier_name,''), shipments.courier_name),
                status = EXCLUDED.status,
                updated_at = now()
            RETURNING `+shipmentColumns,
			uuid.NewString(), s.OrderID, s.CourierName, s.AWB, s.Status)
		return scanShipment(row)
	}
	row := r.Pool.QueryRow(ctx, `INSERT INTO shipments
        (id, order_id, courier_name, awb, status)
        VALUES ($1, NULLIF($2,''), $3, '', $4)
        RETURNING `+shipmentColumns,
		uuid.NewString(), s.OrderID, s.CourierName, s.Status)
	return scanShipment(row)
}

func (r *PostgresShipmentRepo) AppendEvent(ctx context.Context, ev domain.ShipmentEvent) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `INSERT INTO shipment_events
        (id, shipment_id, status, status_detail, external_id, payload, received_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (shipment_id, external_id, status) DO NOTHING`,
		uuid.NewString(), ev.ShipmentID, ev.Status, ev.StatusDetail,
		ev.ExternalID, ev.Payload, ev.ReceivedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanShipment(row pgx.Row) (domain.Shipment, error) {
	var s domain.Shipment
	err := row.Scan(&s.ID, &s.OrderID, &s.CourierName, &s.AWB, &s.Status)
	return s, err
}

var _ domain.ShipmentRepository = (*PostgresShipmentRepo)(nil)
