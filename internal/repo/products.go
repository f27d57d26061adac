package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/models"
)

type ProductsPG struct{ DB *pgxpool.Pool }

// UpsertAll writes each product independently, keyed by its external id.
// A failing row does not roll back the others; the joined error is returned
// after every row has been attempted.
func (r *ProductsPG) UpsertAll(ctx context.Context, products []models.Product) error {
	var errs []error
	for _, p := range products {
		_, err := r.DB.Exec(ctx, `
			insert into products(id, name, price_cents, image, category, updated_at)
			values ($1, $2, $3, $4, $5, now())
			on conflict (id) do update set
				name = excluded.name,
				price_cents = excluded.price_cents,
				image = excluded.image,
				category = excluded.category,
				updated_at = now()
		`, p.ID, p.Name, p.Price, p.Image, p.Category)
		if err != nil {
			errs = append(errs, fmt.Errorf("upsert %s: %w", p.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (r *ProductsPG) GetByID(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := r.DB.QueryRow(ctx, `
		select id, name, price_cents, image, category from products where id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.Category)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Product{}, models.ErrNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r *ProductsPG) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.DB.Query(ctx, `
		select id, name, price_cents, image, category from products order by id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.Category); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductsPG) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRow(ctx, `select count(*) from products`).Scan(&n)
	return n, err
}
