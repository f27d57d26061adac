package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`create table if not exists users (
		id uuid primary key,
		email text not null unique,
		password_hash text not null,
		salt text not null,
		is_admin boolean not null default false,
		created_at timestamptz not null default now()
	)`,
	`create table if not exists products (
		id text primary key,
		name text not null,
		price_cents bigint not null,
		image text not null default '',
		category text not null default '',
		updated_at timestamptz not null default now()
	)`,
	`create table if not exists orders (
		session_id text primary key,
		email text not null default '',
		items jsonb not null default '[]'::jsonb,
		amount_cents bigint not null default 0,
		status text not null default 'pending',
		payment_intent_id text not null default '',
		created_at timestamptz not null default now()
	)`,
	`create index if not exists orders_email_idx on orders (email)`,
}

// Migrate creates the schema if it is not present. Statements are idempotent
// so repeated startups are safe.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
