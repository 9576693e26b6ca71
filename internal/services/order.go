package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"
	"math"

	"github.com/eliezer-r/storefront-platform/internal/api/middleware"
	"github.com/eliezer-r/storefront-platform/internal/cart"
	"github.com/eliezer-r/storefront-platform/internal/errors"
	"github.com/eliezer-r/storefront-platform/internal/models"
	repository "github.com/eliezer-r/storefront-platform/internal/repositories"
	"github.com/eliezer-r/storefront-platform/pkg/email"
	"github.com/eliezer-r/storefront-platform/pkg/payment"
	"github.com/google/uuid"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, userID, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error)
	CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	payments  payment.Provider
	sender    email.Sender
	rates     cart.Rates
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	payments payment.Provider,
	sender email.Sender,
	rates cart.Rates,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		payments:  payments,
		sender:    sender,
		rates:     rates,
	}
}

// CreateOrder charges the payment first and writes the order only on success,
// so a declined payment never leaves an order row behind. Shipping, tax and
// the final total are recomputed from the submitted items; the client total is
// cross-checked, never trusted.
func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	lines := make([]models.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, models.CartLine{
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	totals := cart.Compute(lines)
	if math.Abs(totals.Total-req.Total) > 0.01 {
		return nil, errors.ValidationError("Order total does not match the submitted items")
	}

	costs := s.rates.Checkout(totals.Total)

	if err := s.payments.Charge(ctx, costs.FinalTotal, req.PaymentMethod); err != nil {
		logger.Warn("Payment declined", slog.String("userId", userID.String()), slog.Any("error", err))

		return nil, errors.PaymentDeclinedError("Payment processing failed. Please try again.").WithError(err)
	}

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Total:           totals.Total,
		Shipping:        costs.Shipping,
		Tax:             costs.Tax,
		FinalTotal:      costs.FinalTotal,
		Status:          models.OrderStatusProcessing,
		PaymentStatus:   models.PaymentStatusCompleted,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}

	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			Price:        item.Price,
			ProductTitle: item.ProductTitle,
			ProductImage: item.ProductImage,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, errors.TransactionError("Failed to create order").WithError(err)
	}

	// The order stands on its own; a cart that fails to clear here just shows
	// stale items until the next replace.
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		logger.Warn("Failed to clear cart after order", slog.String("orderId", order.ID.String()), slog.Any("error", err))
	}

	s.sendConfirmation(ctx, userID, order)

	return order, nil
}

// sendConfirmation is fire and forget: the order already succeeded, so an
// email failure is logged and swallowed.
func (s *orderService) sendConfirmation(ctx context.Context, userID uuid.UUID, order *models.Order) {
	logger := middleware.LoggerFromContext(ctx)
	bgCtx := context.WithoutCancel(ctx)

	go func() {
		user, err := s.userRepo.GetUserByID(bgCtx, userID)
		if err != nil {
			logger.Warn("Skipping order confirmation, user lookup failed",
				slog.String("orderId", order.ID.String()), slog.Any("error", err))

			return
		}

		if err := s.sender.SendOrderConfirmation(bgCtx, user.Email, order); err != nil {
			logger.Warn("Failed to send order confirmation",
				slog.String("orderId", order.ID.String()), slog.Any("error", err))
		}
	}()
}

func (s *orderService) GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, userID, orderID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return orders, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, userID, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	err := s.orderRepo.UpdateStatus(ctx, userID, orderID, status)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	return s.GetOrderByID(ctx, userID, orderID)
}

// CancelOrder refuses once the order has shipped or been delivered; anything
// earlier in the lifecycle can still be cancelled.
func (s *orderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.GetOrderByID(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == models.OrderStatusShipped || order.Status == models.OrderStatusDelivered {
		return nil, errors.BadRequestError("Order can no longer be cancelled")
	}

	if order.Status == models.OrderStatusCancelled {
		return order, nil
	}

	return s.UpdateOrderStatus(ctx, userID, orderID, models.OrderStatusCancelled)
}
