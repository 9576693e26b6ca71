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
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		resp, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.AddCartItemRequest
		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		resp, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger := middleware.LoggerFromContext(r.Context())
		logger.Info("Cart item added", slog.Int64("productId", req.ProductID), slog.Int("quantity", req.Quantity))

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		productID, err := productIDFromPath(r)
		if err != nil {
			response.Error(w, err)

			return
		}

		var req models.UpdateCartQuantityRequest
		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		resp, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, productID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		productID, err := productIDFromPath(r)
		if err != nil {
			response.Error(w, err)

			return
		}

		resp, err := h.cartService.RemoveItem(r.Context(), claims.UserID, productID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *CartHandler) Clear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.UserID); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, &models.CartResponse{CartItems: []models.CartRow{}})
	}
}

// Replace swaps the entire cart in one request; this is what a client pushes
// after merging its local cart with the server one.
func (h *CartHandler) Replace() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.ReplaceCartRequest
		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		resp, err := h.cartService.ReplaceCart(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger := middleware.LoggerFromContext(r.Context())
		logger.Info("Cart replaced", slog.Int("items", len(req.Items)))

		response.Success(w, http.StatusOK, resp)
	}
}
