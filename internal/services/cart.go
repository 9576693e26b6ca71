package service

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/eliezer-r/storefront-platform/internal/errors"
	"github.com/eliezer-r/storefront-platform/internal/models"
	repository "github.com/eliezer-r/storefront-platform/internal/repositories"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartResponse, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, productID int64, req *models.UpdateCartQuantityRequest) (*models.CartResponse, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) (*models.CartResponse, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
	ReplaceCart(ctx context.Context, userID uuid.UUID, req *models.ReplaceCartRequest) (*models.ReplaceCartResponse, error)
}

type cartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

// GetCart always returns a response with a non-nil item slice; an empty cart
// is a normal state, not an error.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.CartResponse, error) {
	rows, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if rows == nil {
		rows = []models.CartRow{}
	}

	return &models.CartResponse{CartItems: rows}, nil
}

// AddItem upserts the row: adding a product already in the cart increments
// its quantity rather than duplicating the row.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddCartItemRequest) (*models.CartResponse, error) {
	row := models.CartRow{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Price:     req.Price,
	}

	if err := s.repo.Add(ctx, userID, row); err != nil {
		return nil, errors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

// UpdateQuantity sets an absolute quantity. Zero and negative values are
// rejected; removing a line is an explicit delete, not a quantity update.
func (s *cartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID int64, req *models.UpdateCartQuantityRequest) (*models.CartResponse, error) {
	if req.Quantity <= 0 {
		return nil, errors.ValidationError("Quantity must be at least 1")
	}

	err := s.repo.UpdateQuantity(ctx, userID, productID, req.Quantity)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Item not found in cart").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update cart quantity").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID int64) (*models.CartResponse, error) {
	err := s.repo.Remove(ctx, userID, productID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Item not found in cart").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return s.GetCart(ctx, userID)
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return errors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}

// ReplaceCart swaps the whole cart in one transaction. The merged cart a
// client pushes after login lands here; a failure leaves the previous rows
// untouched.
func (s *cartService) ReplaceCart(ctx context.Context, userID uuid.UUID, req *models.ReplaceCartRequest) (*models.ReplaceCartResponse, error) {
	rows := make([]models.CartRow, 0, len(req.Items))
	for _, item := range req.Items {
		rows = append(rows, models.CartRow{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := s.repo.ReplaceAll(ctx, userID, rows); err != nil {
		return nil, errors.TransactionError("Failed to replace cart").WithError(err)
	}

	items := req.Items
	if items == nil {
		items = []models.ReplaceCartItem{}
	}

	return &models.ReplaceCartResponse{Items: items}, nil
}
