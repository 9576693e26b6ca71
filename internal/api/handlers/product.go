package handlers

import (
	"net/http"

	"github.com/eliezer-r/storefront-platform/internal/cart"
	"github.com/eliezer-r/storefront-platform/internal/errors"
	"github.com/eliezer-r/storefront-platform/internal/utils/response"
)

// ProductHandler serves the external catalog read-only. Products are never
// written here; the catalog is the source of truth for everything except the
// price captured in a cart line.
type ProductHandler struct {
	catalog cart.Catalog
}

func NewProductHandler(catalog cart.Catalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := h.catalog.Products(r.Context())
		if err != nil {
			response.Error(w, errors.NetworkError("Failed to fetch products").WithError(err))

			return
		}

		response.Success(w, http.StatusOK, products)
	}
}
