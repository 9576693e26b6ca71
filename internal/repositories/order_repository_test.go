package repository_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/eliezer-r/storefront-platform/internal/models"
	repository "github.com/eliezer-r/storefront-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderRepoTest(t *testing.T) (repository.OrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewOrderRepo(db), mock
}

func sampleOrder(userID uuid.UUID) *models.Order {
	orderID := uuid.New()

	return &models.Order{
		ID:              orderID,
		UserID:          userID,
		Total:           35.00,
		Shipping:        9.99,
		Tax:             2.80,
		FinalTotal:      47.79,
		Status:          models.OrderStatusProcessing,
		PaymentStatus:   models.PaymentStatusCompleted,
		ShippingAddress: "1 Main St",
		PaymentMethod:   "card",
		Items: []models.OrderItem{
			{ID: uuid.New(), OrderID: orderID, ProductID: 1, Quantity: 2, Price: 17.50, ProductTitle: "Widget", ProductImage: "widget.png"},
		},
	}
}

func TestOrderRepositoryCreate(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()
	now := time.Now()

	orderSQL := `INSERT INTO orders`
	itemSQL := `INSERT INTO order_items`

	t.Run("Success - Order And Items In One Transaction", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		order := sampleOrder(userID)

		mock.ExpectBegin()
		mock.ExpectQuery(orderSQL).
			WithArgs(order.ID, order.UserID, order.Total, order.Shipping, order.Tax, order.FinalTotal,
				order.Status, order.PaymentStatus, order.ShippingAddress, order.PaymentMethod).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectExec(itemSQL).
			WithArgs(order.Items[0].ID, order.ID, int64(1), 2, 17.50, "Widget", "widget.png").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// Act
		err := repo.Create(ctx, order)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.ID, order.Items[0].OrderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Item Insert Rolls Back The Order", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		order := sampleOrder(userID)

		mock.ExpectBegin()
		mock.ExpectQuery(orderSQL).
			WithArgs(order.ID, order.UserID, order.Total, order.Shipping, order.Tax, order.FinalTotal,
				order.Status, order.PaymentStatus, order.ShippingAddress, order.PaymentMethod).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectExec(itemSQL).
			WithArgs(order.Items[0].ID, order.ID, int64(1), 2, 17.50, "Widget", "widget.png").
			WillReturnError(errors.New("insert failed"))
		mock.ExpectRollback()

		// Act
		err := repo.Create(ctx, order)

		// Assert
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "no partial order may survive")
	})

	t.Run("Failure - Order Insert Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		order := sampleOrder(userID)

		mock.ExpectBegin()
		mock.ExpectQuery(orderSQL).
			WithArgs(order.ID, order.UserID, order.Total, order.Shipping, order.Tax, order.FinalTotal,
				order.Status, order.PaymentStatus, order.ShippingAddress, order.PaymentMethod).
			WillReturnError(errors.New("insert failed"))
		mock.ExpectRollback()

		// Act
		err := repo.Create(ctx, order)

		// Assert
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepositoryGetByID(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()
	orderID := uuid.New()
	now := time.Now()

	orderCols := []string{"user_id", "total", "shipping", "tax", "final_total", "status",
		"payment_status", "shipping_address", "payment_method", "created_at", "updated_at"}
	itemCols := []string{"id", "product_id", "quantity", "price", "product_title", "product_image", "created_at"}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)

		mock.ExpectQuery(`SELECT user_id, total, shipping, tax, final_total`).
			WithArgs(orderID, userID).
			WillReturnRows(sqlmock.NewRows(orderCols).
				AddRow(userID, 35.00, 9.99, 2.80, 47.79, "processing", "completed", "1 Main St", "card", now, now))
		mock.ExpectQuery(`SELECT id, product_id, quantity, price`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows(itemCols).
				AddRow(uuid.New(), int64(1), 2, 17.50, "Widget", "widget.png", now))

		// Act
		order, err := repo.GetByID(ctx, userID, orderID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, models.OrderStatusProcessing, order.Status)
		assert.InDelta(t, 47.79, order.FinalTotal, 0.001)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "Widget", order.Items[0].ProductTitle)
	})

	t.Run("Failure - Not Found Passes Through sql.ErrNoRows", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)

		mock.ExpectQuery(`SELECT user_id, total, shipping, tax, final_total`).
			WithArgs(orderID, userID).
			WillReturnError(sql.ErrNoRows)

		// Act
		order, err := repo.GetByID(ctx, userID, orderID)

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, order)
	})
}

func TestOrderRepositoryListByUser(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()
	now := time.Now()

	listCols := []string{"id", "total", "shipping", "tax", "final_total", "status",
		"payment_status", "shipping_address", "payment_method", "created_at", "updated_at"}
	itemCols := []string{"id", "product_id", "quantity", "price", "product_title", "product_image", "created_at"}

	t.Run("Success - Newest First With Items", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		firstID := uuid.New()
		secondID := uuid.New()

		mock.ExpectQuery(`SELECT id, total, shipping, tax, final_total`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(listCols).
				AddRow(firstID, 35.00, 9.99, 2.80, 47.79, "processing", "completed", "1 Main St", "card", now, now).
				AddRow(secondID, 10.00, 9.99, 0.80, 20.79, "delivered", "completed", "1 Main St", "card", now.Add(-time.Hour), now))
		mock.ExpectQuery(`SELECT id, product_id, quantity, price`).
			WithArgs(firstID).
			WillReturnRows(sqlmock.NewRows(itemCols).
				AddRow(uuid.New(), int64(1), 2, 17.50, "Widget", "widget.png", now))
		mock.ExpectQuery(`SELECT id, product_id, quantity, price`).
			WithArgs(secondID).
			WillReturnRows(sqlmock.NewRows(itemCols))

		// Act
		orders, err := repo.ListByUser(ctx, userID)

		// Assert
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, firstID, orders[0].ID)
		assert.Len(t, orders[0].Items, 1)
		assert.Empty(t, orders[1].Items)
	})

	t.Run("Success - No Orders", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectQuery(`SELECT id, total, shipping, tax, final_total`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(listCols))

		// Act
		orders, err := repo.ListByUser(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()
	orderID := uuid.New()

	updateSQL := `UPDATE orders`

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectExec(updateSQL).
			WithArgs(models.OrderStatusShipped, orderID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.UpdateStatus(ctx, userID, orderID, models.OrderStatusShipped)

		// Assert
		require.NoError(t, err)
	})

	t.Run("Failure - Unknown Order", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		mock.ExpectExec(updateSQL).
			WithArgs(models.OrderStatusShipped, orderID, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.UpdateStatus(ctx, userID, orderID, models.OrderStatusShipped)

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
