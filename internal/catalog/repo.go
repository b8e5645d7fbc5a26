// Package catalog provides the repository interface and PostgreSQL
// implementation for managing products.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	List(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	UpdatePrice(ctx context.Context, id int, price *string) (*Product, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO products (name, price, category)
		VALUES ($1,$2,$3)
		RETURNING id
	`, p.Name, p.Price, p.Category).Scan(&p.ID)
}

func (r *PGRepo) List(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, price::text, category
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, price::text, category
		FROM products
		WHERE category = $1
		ORDER BY id
	`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdatePrice(ctx context.Context, id int, price *string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Product
	err := r.db.QueryRow(ctx, `
		UPDATE products
		SET price = $2
		WHERE id = $1
		RETURNING id, name, price::text, category
	`, id, price).Scan(&p.ID, &p.Name, &p.Price, &p.Category)
	if err != nil {
		return nil, ErrNotFound
	}
	return &p, nil
}

// EnsureSchema creates the products table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id       BIGSERIAL PRIMARY KEY,
			name     TEXT NOT NULL,
			price    NUMERIC NULL,
			category TEXT NOT NULL
		)
	`)
	return err
}
