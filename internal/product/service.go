package product

import (
	"context"
	"database/sql"
	"errors"

	"sepet-be/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrNameRequired = errors.New("product name is required")
	ErrInvalidPrice = errors.New("price must not be negative")
	ErrInvalidStock = errors.New("stock must not be negative")
)

type Service interface {
	Create(ctx context.Context, params CreateParams) (Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	GetByID(ctx context.Context, id int) (Product, error)
	Update(ctx context.Context, params UpdateParams) (Product, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CreateParams) (Product, error) {
	if params.Name == "" {
		return Product{}, ErrNameRequired
	}
	if params.Price < 0 {
		return Product{}, ErrInvalidPrice
	}
	if params.Stock < 0 {
		return Product{}, ErrInvalidStock
	}

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		return Product{}, err
	}

	logger.FromCtx(ctx).Info("product created",
		zap.Int("product_id", p.ID),
		zap.String("name", p.Name),
	)

	return p, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id int) (Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (s *service) Update(ctx context.Context, params UpdateParams) (Product, error) {
	if params.Price != nil && *params.Price < 0 {
		return Product{}, ErrInvalidPrice
	}
	if params.Stock != nil && *params.Stock < 0 {
		return Product{}, ErrInvalidStock
	}
	if params.Name != nil && *params.Name == "" {
		return Product{}, ErrNameRequired
	}

	p, err := s.repo.Update(ctx, params)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (s *service) Delete(ctx context.Context, id int) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
