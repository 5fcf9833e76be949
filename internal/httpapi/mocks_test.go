package httpapi

import (
	"context"

	"sepet-be/internal/category"
	"sepet-be/internal/order"
	"sepet-be/internal/product"
	"sepet-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, params user.RegisterParams) (string, user.User, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Get(1).(user.User), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, *user.Profile, error) {
	args := m.Called(ctx, email, password)
	var p *user.Profile
	if args.Get(1) != nil {
		p = args.Get(1).(*user.Profile)
	}
	return args.String(0), p, args.Error(2)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID int) (*user.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, params user.UpdateProfileParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockUserService) ListNonAdmin(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, params product.CreateParams) (product.Product, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(product.Product), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, filter product.ListFilter) ([]product.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int) (product.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, params product.UpdateParams) (product.Product, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]category.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, name string) (category.Category, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(category.Category), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) AddToCart(ctx context.Context, userID, productID, quantity int) ([]order.CartLine, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.CartLine), args.Error(1)
}

func (m *MockOrderService) RemoveFromCart(ctx context.Context, userID, productID int) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockOrderService) Checkout(ctx context.Context, userID int, items []order.CheckoutItem, address *string) (*order.Order, error) {
	args := m.Called(ctx, userID, items, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateAddress(ctx context.Context, orderID int, address string) error {
	args := m.Called(ctx, orderID, address)
	return args.Error(0)
}

func (m *MockOrderService) ListForAdmin(ctx context.Context, status, nameSearch *string) ([]order.AdminOrder, error) {
	args := m.Called(ctx, status, nameSearch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.AdminOrder), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID int, status order.Status) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockOrderService) UpdateDetails(ctx context.Context, orderID int, trackingNumber, adminNote string) (*order.Order, error) {
	args := m.Called(ctx, orderID, trackingNumber, adminNote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, orderID int) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}
