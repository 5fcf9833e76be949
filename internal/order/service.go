package order

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"sepet-be/internal/logger"
	"sepet-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	AddToCart(ctx context.Context, userID, productID, quantity int) ([]CartLine, error)
	RemoveFromCart(ctx context.Context, userID, productID int) error
	Checkout(ctx context.Context, userID int, items []CheckoutItem, address *string) (*Order, error)
	UpdateAddress(ctx context.Context, orderID int, address string) error

	ListForAdmin(ctx context.Context, status, nameSearch *string) ([]AdminOrder, error)
	UpdateStatus(ctx context.Context, orderID int, status Status) error
	UpdateDetails(ctx context.Context, orderID int, trackingNumber, adminNote string) (*Order, error)
	Delete(ctx context.Context, orderID int) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
	locks       *userLocks
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{
		repo:        repo,
		productRepo: productRepo,
		locks:       newUserLocks(),
	}
}

// AddToCart adds a product to the user's open cart, creating the cart
// on first use. Mutations for the same user are serialized.
func (s *service) AddToCart(ctx context.Context, userID, productID, quantity int) ([]CartLine, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.Int("user_id", userID),
		zap.Int("product_id", productID),
		zap.Int("quantity", quantity),
	)

	mu := s.locks.get(userID)
	mu.Lock()
	defer mu.Unlock()

	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	current, err := s.repo.GetCartItemQuantity(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	if p.Stock < current+quantity {
		log.Warn("insufficient stock",
			zap.Int("stock", p.Stock),
			zap.Int("requested", current+quantity),
		)
		return nil, ErrInsufficientStock
	}

	if err := s.repo.UpsertCartItem(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}

	log.Info("cart updated")

	return s.repo.GetCartLines(ctx, userID)
}

func (s *service) RemoveFromCart(ctx context.Context, userID, productID int) error {
	mu := s.locks.get(userID)
	mu.Lock()
	defer mu.Unlock()

	orderID, err := s.repo.FindCartOrderID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCartNotFound
		}
		return err
	}

	err = s.repo.DeleteCartItem(ctx, orderID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrItemNotFound
	}
	return err
}

// Checkout finalizes a purchase from the submitted items. The total is
// recomputed server-side from current prices and the user's open cart
// is removed in the same transaction.
func (s *service) Checkout(ctx context.Context, userID int, items []CheckoutItem, address *string) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCheckout
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	mu := s.locks.get(userID)
	mu.Lock()
	defer mu.Unlock()

	orderID, err := s.repo.CheckoutTx(ctx, userID, items, address)
	if err != nil {
		return nil, err
	}

	return s.repo.GetOrderWithLines(ctx, orderID)
}

func (s *service) UpdateAddress(ctx context.Context, orderID int, address string) error {
	err := s.repo.UpdateAddress(ctx, orderID, address)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	return err
}

func (s *service) ListForAdmin(ctx context.Context, status, nameSearch *string) ([]AdminOrder, error) {
	filter := AdminFilter{NameSearch: nameSearch}

	if status != nil && *status != "" {
		st := Status(*status)
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		filter.Status = &st
	}

	return s.repo.ListForAdmin(ctx, filter)
}

// UpdateStatus moves an order along the fulfillment pipeline. Backward
// and skipping transitions are rejected.
func (s *service) UpdateStatus(ctx context.Context, orderID int, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	current, err := s.repo.GetStatus(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return err
	}

	if !CanTransition(current, status) {
		return ErrInvalidTransition
	}
	if current == status {
		return nil
	}

	err = s.repo.UpdateStatus(ctx, orderID, status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	return err
}

func (s *service) UpdateDetails(ctx context.Context, orderID int, trackingNumber, adminNote string) (*Order, error) {
	if strings.TrimSpace(trackingNumber) == "" {
		trackingNumber = "TRK-" + uuid.New().String()[:8]
	}

	o, err := s.repo.UpdateDetails(ctx, orderID, trackingNumber, adminNote)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return &o, nil
}

// Delete is idempotent; deleting an already-deleted order succeeds.
func (s *service) Delete(ctx context.Context, orderID int) error {
	return s.repo.Delete(ctx, orderID)
}
