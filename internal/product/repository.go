package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sepet-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, params CreateParams) (Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	FindByID(ctx context.Context, id int) (Product, error)
	Update(ctx context.Context, params UpdateParams) (Product, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = "id, name, price, description, stock, image_url, category_id, created_at, updated_at"

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Description,
		&p.Stock,
		&p.ImageURL,
		&p.CategoryID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *repository) Create(ctx context.Context, params CreateParams) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("name", params.Name),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, price, description, stock, image_url, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+productColumns,
		params.Name, params.Price, params.Description, params.Stock, params.ImageURL, params.CategoryID,
	)

	p, err := scanProduct(row)
	if err != nil {
		log.Error("db: failed to insert product", zap.Error(err))
		return Product{}, err
	}

	return p, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	start := time.Now()

	where := []string{}
	args := []any{}

	if filter.Search != nil && *filter.Search != "" {
		log = log.With(zap.String("filter_search", *filter.Search))
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+*filter.Search+"%")
	}

	if filter.CategoryID != nil {
		log = log.With(zap.Int("filter_category_id", *filter.CategoryID))
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)+1))
		args = append(args, *filter.CategoryID)
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (Product, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1",
		id,
	)
	return scanProduct(row)
}

func (r *repository) Update(ctx context.Context, params UpdateParams) (Product, error) {
	set := []string{}
	args := []any{}

	add := func(col string, v any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, v)
	}

	if params.Name != nil {
		add("name", *params.Name)
	}
	if params.Price != nil {
		add("price", *params.Price)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.Stock != nil {
		add("stock", *params.Stock)
	}
	if params.ImageURL != nil {
		add("image_url", *params.ImageURL)
	}
	if params.CategoryID != nil {
		add("category_id", *params.CategoryID)
	}

	if len(set) == 0 {
		return r.FindByID(ctx, params.ID)
	}

	set = append(set, "updated_at = NOW()")
	args = append(args, params.ID)

	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args), productColumns,
	)

	row := r.db.QueryRowContext(ctx, query, args...)
	return scanProduct(row)
}

func (r *repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
