package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	models "github.com/rogerio-castellano/storefront-api/internal/models"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, code, title, description, price, stock, category, status, thumbnails, created_at, updated_at`

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	var thumbs []byte
	err := row.Scan(&p.ID, &p.Code, &p.Title, &p.Description, &p.Price, &p.Stock, &p.Category, &p.Status, &thumbs, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Product{}, err
	}
	p.Thumbnails = []string{}
	if len(thumbs) > 0 {
		if err := json.Unmarshal(thumbs, &p.Thumbnails); err != nil {
			return models.Product{}, fmt.Errorf("failed to decode thumbnails: %w", err)
		}
	}
	return p, nil
}

func encodeThumbnails(thumbs []string) ([]byte, error) {
	if thumbs == nil {
		thumbs = []string{}
	}
	return json.Marshal(thumbs)
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Thumbnails == nil {
		p.Thumbnails = []string{}
	}
	thumbs, err := encodeThumbnails(p.Thumbnails)
	if err != nil {
		return models.Product{}, err
	}

	_, err = r.db.ExecContext(ctx, query, p.ID, p.Code, p.Title, p.Description, p.Price, p.Stock, p.Category, p.Status, thumbs, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.Product, error) {
	found := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		found[p.ID] = p
	}
	return found, rows.Err()
}

func (r *PostgresProductRepository) Find(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := filterConditions(pf)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	query += conditions
	switch pf.Sort {
	case SortPriceAsc:
		query += " ORDER BY price ASC, seq"
	case SortPriceDesc:
		query += " ORDER BY price DESC, seq"
	default:
		query += " ORDER BY seq"
	}

	if pf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, pf.Limit)
		argIdx++
	}
	if pf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, pf.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, totalCount, rows.Err()
}

func filterConditions(pf ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if pf.TextQuery != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+escapeLike(pf.TextQuery)+"%")
		argIdx++
	}
	if pf.Category != "" {
		query += fmt.Sprintf(" AND category ILIKE $%d", argIdx)
		args = append(args, "%"+escapeLike(pf.Category)+"%")
		argIdx++
	}
	if pf.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *pf.Status)
		argIdx++
	}
	if pf.InStock {
		query += " AND stock > 0"
	}

	return query, args, argIdx
}

func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	query := `UPDATE products
		SET title = $1, description = $2, price = $3, stock = $4, category = $5, status = $6, thumbnails = $7, updated_at = $8
		WHERE id = $9
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	thumbs, err := encodeThumbnails(p.Thumbnails)
	if err != nil {
		return models.Product{}, err
	}

	updated, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.Title, p.Description, p.Price, p.Stock, p.Category, p.Status, thumbs, time.Now().UTC(), p.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return updated, err
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
