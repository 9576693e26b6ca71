package handlers_test

import (
	"context"

	"github.com/eliezer-r/storefront-platform/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockCartService struct {
	mock.Mock
}

func (m *mockCartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {
	args := m.Called(ctx, userID)

	var resp *models.CartResponse
	if v := args.Get(0); v != nil {
		resp = v.(*models.CartResponse)
	}

	return resp, args.Error(1)
}

func (m *mockCartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartResponse, error) {
	args := m.Called(ctx, userID, req)

	var resp *models.CartResponse
	if v := args.Get(0); v != nil {
		resp = v.(*models.CartResponse)
	}

	return resp, args.Error(1)
}

func (m *mockCartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID int64, req *models.UpdateCartQuantityRequest) (*models.CartResponse, error) {
	args := m.Called(ctx, userID, productID, req)

	var resp *models.CartResponse
	if v := args.Get(0); v != nil {
		resp = v.(*models.CartResponse)
	}

	return resp, args.Error(1)
}

func (m *mockCartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) (*models.CartResponse, error) {
	args := m.Called(ctx, userID, productID)

	var resp *models.CartResponse
	if v := args.Get(0); v != nil {
		resp = v.(*models.CartResponse)
	}

	return resp, args.Error(1)
}

func (m *mockCartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockCartService) ReplaceCart(ctx context.Context, userID uuid.UUID, req *models.ReplaceCartRequest) (*models.ReplaceCartResponse, error) {
	args := m.Called(ctx, userID, req)

	var resp *models.ReplaceCartResponse
	if v := args.Get(0); v != nil {
		resp = v.(*models.ReplaceCartResponse)
	}

	return resp, args.Error(1)
}

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, userID, req)

	var order *models.Order
	if v := args.Get(0); v != nil {
		order = v.(*models.Order)
	}

	return order, args.Error(1)
}

func (m *mockOrderService) GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)

	var order *models.Order
	if v := args.Get(0); v != nil {
		order = v.(*models.Order)
	}

	return order, args.Error(1)
}

func (m *mockOrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	args := m.Called(ctx, userID)

	var orders []models.Order
	if v := args.Get(0); v != nil {
		orders = v.([]models.Order)
	}

	return orders, args.Error(1)
}

func (m *mockOrderService) UpdateOrderStatus(ctx context.Context, userID, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID, status)

	var order *models.Order
	if v := args.Get(0); v != nil {
		order = v.(*models.Order)
	}

	return order, args.Error(1)
}

func (m *mockOrderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)

	var order *models.Order
	if v := args.Get(0); v != nil {
		order = v.(*models.Order)
	}

	return order, args.Error(1)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)

	var user *models.User
	if v := args.Get(0); v != nil {
		user = v.(*models.User)
	}

	return user, args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)

	var resp *models.LoginResponse
	if v := args.Get(0); v != nil {
		resp = v.(*models.LoginResponse)
	}

	return resp, args.Error(1)
}

func (m *mockUserService) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	var user *models.User
	if v := args.Get(0); v != nil {
		user = v.(*models.User)
	}

	return user, args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, id, req)

	var user *models.User
	if v := args.Get(0); v != nil {
		user = v.(*models.User)
	}

	return user, args.Error(1)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Products(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)

	var products []models.Product
	if v := args.Get(0); v != nil {
		products = v.([]models.Product)
	}

	return products, args.Error(1)
}
