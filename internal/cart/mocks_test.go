package cart_test

import (
	"context"

	"github.com/eliezer-r/storefront-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockRemoteCart struct {
	mock.Mock
}

func (m *mockRemoteCart) List(ctx context.Context) ([]models.CartRow, error) {
	args := m.Called(ctx)

	if rows, ok := args.Get(0).([]models.CartRow); ok {
		return rows, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRemoteCart) Add(ctx context.Context, row models.CartRow) error {
	return m.Called(ctx, row).Error(0)
}

func (m *mockRemoteCart) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	return m.Called(ctx, productID, quantity).Error(0)
}

func (m *mockRemoteCart) Remove(ctx context.Context, productID int64) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *mockRemoteCart) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockRemoteCart) ReplaceAll(ctx context.Context, rows []models.CartRow) error {
	return m.Called(ctx, rows).Error(0)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Products(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)

	if products, ok := args.Get(0).([]models.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockLocalStore struct {
	mock.Mock
}

func (m *mockLocalStore) Load() ([]models.CartLine, error) {
	args := m.Called()

	if lines, ok := args.Get(0).([]models.CartLine); ok {
		return lines, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockLocalStore) Save(lines []models.CartLine) error {
	return m.Called(lines).Error(0)
}

func (m *mockLocalStore) Clear() error {
	return m.Called().Error(0)
}
