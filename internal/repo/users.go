package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/models"
)

const pgUniqueViolation = "23505"

type UsersPG struct{ DB *pgxpool.Pool }

func (r *UsersPG) Create(ctx context.Context, u models.User) error {
	_, err := r.DB.Exec(ctx, `
		insert into users(id, email, password_hash, salt, is_admin, created_at)
		values ($1::uuid, $2, $3, $4, $5, $6)
	`, u.ID, u.Email, u.PasswordHash, u.Salt, u.IsAdmin, u.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return models.ErrDuplicateEmail
	}
	return err
}

func (r *UsersPG) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.get(ctx, `
		select id::text, email, password_hash, salt, is_admin, created_at
		from users where email = lower($1)
	`, email)
}

func (r *UsersPG) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.get(ctx, `
		select id::text, email, password_hash, salt, is_admin, created_at
		from users where id::text = $1
	`, id)
}

func (r *UsersPG) get(ctx context.Context, query, arg string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Salt, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, models.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}
