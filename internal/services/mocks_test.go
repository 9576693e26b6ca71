package service_test

import (
	"context"

	"github.com/eliezer-r/storefront-platform/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) List(ctx context.Context, userID uuid.UUID) ([]models.CartRow, error) {
	args := m.Called(ctx, userID)

	var rows []models.CartRow
	if v := args.Get(0); v != nil {
		rows = v.([]models.CartRow)
	}

	return rows, args.Error(1)
}

func (m *mockCartRepository) Add(ctx context.Context, userID uuid.UUID, row models.CartRow) error {
	return m.Called(ctx, userID, row).Error(0)
}

func (m *mockCartRepository) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID int64, quantity int) error {
	return m.Called(ctx, userID, productID, quantity).Error(0)
}

func (m *mockCartRepository) Remove(ctx context.Context, userID uuid.UUID, productID int64) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *mockCartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockCartRepository) ReplaceAll(ctx context.Context, userID uuid.UUID, rows []models.CartRow) error {
	return m.Called(ctx, userID, rows).Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)

	var order *models.Order
	if v := args.Get(0); v != nil {
		order = v.(*models.Order)
	}

	return order, args.Error(1)
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	args := m.Called(ctx, userID)

	var orders []models.Order
	if v := args.Get(0); v != nil {
		orders = v.([]models.Order)
	}

	return orders, args.Error(1)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status models.OrderStatus) error {
	return m.Called(ctx, userID, orderID, status).Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)

	var user *models.User
	if v := args.Get(0); v != nil {
		user = v.(*models.User)
	}

	return user, args.Error(1)
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	var user *models.User
	if v := args.Get(0); v != nil {
		user = v.(*models.User)
	}

	return user, args.Error(1)
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockRateLimitRepository struct {
	mock.Mock
}

func (m *mockRateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

type mockPaymentProvider struct {
	mock.Mock
}

func (m *mockPaymentProvider) Charge(ctx context.Context, amount float64, method string) error {
	return m.Called(ctx, amount, method).Error(0)
}

type mockEmailSender struct {
	mock.Mock
}

func (m *mockEmailSender) SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error {
	return m.Called(ctx, to, order).Error(0)
}
