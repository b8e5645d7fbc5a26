package order

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]Order, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO orders (product_id, quantity, total_price, customer_name)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, o.ProductID, o.Quantity, o.TotalPrice, o.CustomerName).Scan(&o.ID)
}

func (r *PGRepo) List(ctx context.Context) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, quantity, total_price::text, customer_name
		FROM orders
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Quantity, &o.TotalPrice, &o.CustomerName); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// EnsureSchema creates the orders table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			id            BIGSERIAL PRIMARY KEY,
			product_id    BIGINT NOT NULL,
			quantity      INT NOT NULL,
			total_price   NUMERIC NOT NULL,
			customer_name TEXT NOT NULL
		)
	`)
	return err
}
