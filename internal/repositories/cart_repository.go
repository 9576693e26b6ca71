package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eliezer-r/storefront-platform/internal/models"
	"github.com/eliezer-r/storefront-platform/internal/utils"
	"github.com/google/uuid"
)

// CartRepository owns the authoritative per-user cart rows. Rows hold only
// product id, quantity and the captured price; display fields are a client
// enrichment concern.
type CartRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.CartRow, error)
	Add(ctx context.Context, userID uuid.UUID, row models.CartRow) error
	UpdateQuantity(ctx context.Context, userID uuid.UUID, productID int64, quantity int) error
	Remove(ctx context.Context, userID uuid.UUID, productID int64) error
	Clear(ctx context.Context, userID uuid.UUID) error
	ReplaceAll(ctx context.Context, userID uuid.UUID, rows []models.CartRow) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) List(ctx context.Context, userID uuid.UUID) ([]models.CartRow, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT product_id, quantity, price
		FROM carts
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	defer rows.Close()

	var items []models.CartRow

	for rows.Next() {
		var item models.CartRow

		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart items: %w", err)
	}

	return items, nil
}

// Add is an upsert: a second add of the same product increments its quantity
// instead of creating a duplicate row, keeping one row per (user, product).
func (r *cartRepository) Add(ctx context.Context, userID uuid.UUID, row models.CartRow) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carts (user_id, product_id, quantity, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = carts.quantity + EXCLUDED.quantity, updated_at = NOW()
	`

	if _, err := r.DB.ExecContext(dbCtx, query, userID, row.ProductID, row.Quantity, row.Price); err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID int64, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE carts
		SET quantity = $1, updated_at = NOW()
		WHERE user_id = $2 AND product_id = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, quantity, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to update cart quantity: %w", err)
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

func (r *cartRepository) Remove(ctx context.Context, userID uuid.UUID, productID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM carts WHERE user_id = $1 AND product_id = $2`

	result, err := r.DB.ExecContext(dbCtx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
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

// Clear succeeds even when the cart is already empty.
func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `DELETE FROM carts WHERE user_id = $1`

	if _, err := r.DB.ExecContext(dbCtx, query, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

// ReplaceAll atomically substitutes the user's entire row set: either all old
// rows are gone and all new rows are present, or nothing changed.
func (r *cartRepository) ReplaceAll(ctx context.Context, userID uuid.UUID, items []models.CartRow) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM carts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete existing cart items: %w", err)
	}

	query := `
		INSERT INTO carts (user_id, product_id, quantity, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`

	for _, item := range items {
		if _, err := tx.ExecContext(dbCtx, query, userID, item.ProductID, item.Quantity, item.Price); err != nil {
			return fmt.Errorf("failed to insert cart item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cart replacement: %w", err)
	}

	return nil
}
