package category

import (
	"context"
	"database/sql"

	"sepet-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Category, error)
	Add(ctx context.Context, name string) (Category, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM categories ORDER BY name ASC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *repository) Add(ctx context.Context, name string) (Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Add"),
		zap.String("name", name),
	)

	var c Category
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO categories (name) VALUES ($1) RETURNING id, name, created_at",
		name,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		log.Error("db: failed to insert category", zap.Error(err))
		return Category{}, err
	}

	return c, nil
}
