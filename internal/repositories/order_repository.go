package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eliezer-r/storefront-platform/internal/models"
	"github.com/eliezer-r/storefront-platform/internal/utils"
	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status models.OrderStatus) error
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

// Create inserts the order row and all item rows in one transaction; a
// failing item insert rolls the whole order back so no partial order is ever
// visible.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, user_id, total, shipping, tax, final_total, status, payment_status, shipping_address, payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err = tx.QueryRowContext(dbCtx, query,
		order.ID, order.UserID, order.Total, order.Shipping, order.Tax, order.FinalTotal,
		order.Status, order.PaymentStatus, order.ShippingAddress, order.PaymentMethod).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price, product_title, product_image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		if _, err := tx.ExecContext(dbCtx, itemQuery,
			item.ID, order.ID, item.ProductID, item.Quantity, item.Price,
			item.ProductTitle, item.ProductImage); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{ID: orderID}

	query := `
		SELECT user_id, total, shipping, tax, final_total, status, payment_status, shipping_address, payment_method, created_at, updated_at
		FROM orders
		WHERE id = $1 AND user_id = $2
	`

	err := r.DB.QueryRowContext(dbCtx, query, orderID, userID).Scan(
		&order.UserID, &order.Total, &order.Shipping, &order.Tax, &order.FinalTotal,
		&order.Status, &order.PaymentStatus, &order.ShippingAddress, &order.PaymentMethod,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.itemsForOrder(dbCtx, orderID)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, total, shipping, tax, final_total, status, payment_status, shipping_address, payment_method, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		order := models.Order{UserID: userID}

		if err := rows.Scan(&order.ID, &order.Total, &order.Shipping, &order.Tax, &order.FinalTotal,
			&order.Status, &order.PaymentStatus, &order.ShippingAddress, &order.PaymentMethod,
			&order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	for i := range orders {
		items, err := r.itemsForOrder(dbCtx, orders[i].ID)
		if err != nil {
			return nil, err
		}

		orders[i].Items = items
	}

	return orders, nil
}

func (r *orderRepository) itemsForOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	query := `
		SELECT id, product_id, quantity, price, product_title, product_image, created_at
		FROM order_items
		WHERE order_id = $1
	`

	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {
		item := models.OrderItem{OrderID: orderID}

		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.Price,
			&item.ProductTitle, &item.ProductImage, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}

	return items, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, status, orderID, userID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
