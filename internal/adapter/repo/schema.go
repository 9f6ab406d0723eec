package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema — создать таблицы сервиса, если отсутствуют. Таблица orders
// принадлежит витрине и здесь не создаётся.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS payments (
  id uuid PRIMARY KEY,
  order_id text,
  provider text NOT NULL DEFAULT 'xendit',
  session_id text NOT NULL UNIQUE,
  status text NOT NULL DEFAULT '',
  amount numeric NOT NULL DEFAULT 0,
  currency text NOT NULL DEFAULT '',
  payment_method text NOT NULL DEFAULT '',
  payment_channel text NOT NULL DEFAULT '',
  invoice_url text NOT NULL DEFAULT '',
  failure_code text NOT NULL DEFAULT '',
  failure_message text NOT NULL DEFAULT '',
  paid_at timestamptz,
  expired_at timestamptz,
  failed_at timestamptz,
  webhook_received_at timestamptz,
  webhook_headers jsonb,
  created_at timestamptz NOT NULL DEFAULT now(),
  updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS payment_events (
  id uuid PRIMARY KEY,
  payment_id uuid NOT NULL REFERENCES payments(id),
  event_type text NOT NULL,
  external_id text NOT NULL,
  payload jsonb,
  headers jsonb,
  received_at timestamptz NOT NULL DEFAULT now(),
  UNIQUE (payment_id, external_id, event_type)
);

CREATE TABLE IF NOT EXISTS shipments (
  id uuid PRIMARY KEY,
  order_id text,
  courier_name text NOT NULL DEFAULT '',
  awb text NOT NULL DEFAULT '',
  status text NOT NULL DEFAULT '',
  created_at timestamptz NOT NULL DEFAULT now(),
  updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS shipments_awb_key ON shipments(awb) WHERE awb <> '';

CREATE TABLE IF NOT EXISTS shipment_events (
  id uuid PRIMARY KEY,
  shipment_id uuid NOT NULL REFERENCES shipments(id),
  status text NOT NULL,
  status_detail text NOT NULL DEFAULT '',
  external_id text NOT NULL,
  payload jsonb,
  received_at timestamptz NOT NULL DEFAULT now(),
  UNIQUE (shipment_id, external_id, status)
);`)
	return err
}
