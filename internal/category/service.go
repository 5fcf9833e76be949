package category

import (
	"context"
	"errors"
	"strings"
)

var ErrNameRequired = errors.New("category name is required")

type Service interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, name string) (Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Category, error) {
	return s.repo.GetAll(ctx)
}

// Create rejects blank names instead of defaulting them to empty strings.
func (s *service) Create(ctx context.Context, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrNameRequired
	}
	return s.repo.Add(ctx, name)
}
