package repo

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/models"
)

type OrdersPG struct{ DB *pgxpool.Pool }

// Upsert inserts or overwrites the order for a session id in one statement,
// so concurrent session-creation and webhook writes serialize per key with
// last-write-wins semantics.
func (r *OrdersPG) Upsert(ctx context.Context, o models.Order) error {
	items := o.Items
	if items == nil {
		items = []models.OrderItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, `
		insert into orders(session_id, email, items, amount_cents, status, payment_intent_id, created_at)
		values ($1, $2, $3::jsonb, $4, $5, $6, $7)
		on conflict (session_id) do update set
			email = excluded.email,
			items = excluded.items,
			amount_cents = excluded.amount_cents,
			status = excluded.status,
			payment_intent_id = excluded.payment_intent_id,
			created_at = excluded.created_at
	`, o.SessionID, o.Email, string(b), o.Amount, string(o.Status), o.PaymentIntentID, o.CreatedAt)
	return err
}

// ListByEmail returns the order history newest first. An email with no
// orders yields an empty slice, not an error.
func (r *OrdersPG) ListByEmail(ctx context.Context, email string) ([]models.Order, error) {
	rows, err := r.DB.Query(ctx, `
		select session_id, email, items, amount_cents, status, payment_intent_id, created_at
		from orders
		where email = lower($1)
		order by created_at desc
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		var items []byte
		var status string
		if err := rows.Scan(&o.SessionID, &o.Email, &items, &o.Amount, &status, &o.PaymentIntentID, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Status = models.OrderStatus(status)
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
