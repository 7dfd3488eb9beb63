package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/storefront-api/internal/models"
)

type PostgresCartRepository struct {
	db       *sql.DB
	products ProductRepository
}

func NewPostgresCartRepository(db *sql.DB, products ProductRepository) *PostgresCartRepository {
	return &PostgresCartRepository{db: db, products: products}
}

func (r *PostgresCartRepository) Create(ctx context.Context) (models.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	cart := models.Cart{ID: uuid.NewString(), Items: []models.CartItem{}, CreatedAt: now, UpdatedAt: now}
	_, err := r.db.ExecContext(ctx, `INSERT INTO carts (id, created_at, updated_at) VALUES ($1, $2, $3)`,
		cart.ID, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		return models.Cart{}, fmt.Errorf("failed to insert cart: %w", err)
	}
	return cart, nil
}

func (r *PostgresCartRepository) GetByID(ctx context.Context, id string, opts FindOptions) (models.Cart, error) {
	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var cart models.Cart
	err := r.db.QueryRowContext(qctx, `SELECT id, created_at, updated_at FROM carts WHERE id = $1`, id).
		Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Cart{}, ErrCartNotFound
	}
	if err != nil {
		return models.Cart{}, err
	}

	rows, err := r.db.QueryContext(qctx,
		`SELECT product_id, quantity FROM cart_items WHERE cart_id = $1 ORDER BY position`, id)
	if err != nil {
		return models.Cart{}, err
	}
	defer rows.Close()

	cart.Items = []models.CartItem{}
	for rows.Next() {
		var it models.CartItem
		if err := rows.Scan(&it.ProductID, &it.Quantity); err != nil {
			return models.Cart{}, err
		}
		cart.Items = append(cart.Items, it)
	}
	if err := rows.Err(); err != nil {
		return models.Cart{}, err
	}

	if opts.IncludeProductDetails {
		if err := populateItems(ctx, r.products, cart.Items); err != nil {
			return models.Cart{}, err
		}
	}
	return cart, nil
}

// ReplaceItems rewrites the cart's lines inside one transaction.
func (r *PostgresCartRepository) ReplaceItems(ctx context.Context, id string, items []models.CartItem) (models.Cart, error) {
	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(qctx, nil)
	if err != nil {
		return models.Cart{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(qctx, `UPDATE carts SET updated_at = $1 WHERE id = $2`, time.Now().UTC(), id)
	if err != nil {
		return models.Cart{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Cart{}, ErrCartNotFound
	}

	if _, err := tx.ExecContext(qctx, `DELETE FROM cart_items WHERE cart_id = $1`, id); err != nil {
		return models.Cart{}, err
	}
	for i, it := range items {
		_, err := tx.ExecContext(qctx,
			`INSERT INTO cart_items (cart_id, position, product_id, quantity) VALUES ($1, $2, $3, $4)`,
			id, i, it.ProductID, it.Quantity)
		if err != nil {
			return models.Cart{}, fmt.Errorf("failed to insert cart item: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return models.Cart{}, err
	}

	return r.GetByID(ctx, id, FindOptions{})
}

func (r *PostgresCartRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCartNotFound
	}
	return nil
}
