package handlers

import (
	"log/slog"
	"net/http"

	"github.com/eliezer-r/storefront-platform/internal/api/middleware"
	"github.com/eliezer-r/storefront-platform/internal/errors"
	"github.com/eliezer-r/storefront-platform/internal/models"
	service "github.com/eliezer-r/storefront-platform/internal/services"
	"github.com/eliezer-r/storefront-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

func (h *OrderHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.CreateOrderRequest
		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		order, err := h.orderService.CreateOrder(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger := middleware.LoggerFromContext(r.Context())
		logger.Info("Order created",
			slog.String("orderId", order.ID.String()),
			slog.Float64("finalTotal", order.FinalTotal))

		response.Success(w, http.StatusCreated, &models.OrderResponse{Order: order})
	}
}

func (h *OrderHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		orderID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid order id"))

			return
		}

		order, err := h.orderService.GetOrderByID(r.Context(), claims.UserID, orderID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, &models.OrderResponse{Order: order})
	}
}

func (h *OrderHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		orders, err := h.orderService.ListOrders(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, &models.OrderListResponse{Orders: orders})
	}
}

func (h *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		orderID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid order id"))

			return
		}

		var req models.UpdateOrderStatusRequest
		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		order, err := h.orderService.UpdateOrderStatus(r.Context(), claims.UserID, orderID, req.Status)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, &models.OrderResponse{Order: order})
	}
}

func (h *OrderHandler) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		orderID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid order id"))

			return
		}

		order, err := h.orderService.CancelOrder(r.Context(), claims.UserID, orderID)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger := middleware.LoggerFromContext(r.Context())
		logger.Info("Order cancelled", slog.String("orderId", orderID.String()))

		response.Success(w, http.StatusOK, &models.OrderResponse{Order: order})
	}
}
