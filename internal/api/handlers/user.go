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

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		user, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger := middleware.LoggerFromContext(r.Context())
		logger.Info("User registered", slog.String("userId", user.ID.String()))

		response.Success(w, http.StatusCreated, user)
	}
}

// Login writes failed attempts as a 401 or 429 body rather than an error
// envelope, so the client can surface remaining tries or the retry window.
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		if !resp.Success {
			status := http.StatusUnauthorized
			if resp.RetryAfter > 0 {
				status = http.StatusTooManyRequests
			}

			logger.Warn("Login rejected", slog.String("email", req.Email))
			response.WriteJson(w, status, resp)

			return
		}

		logger.Info("User logged in", slog.String("email", req.Email))
		response.WriteJson(w, http.StatusOK, resp)
	}
}

func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		user, err := h.userService.GetProfile(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

func (h *UserHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.UpdateProfileRequest
		if !parseAndValidate(w, r, h.validator, &req) {
			return
		}

		user, err := h.userService.UpdateProfile(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, user)
	}
}
