package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/eliezer-r/storefront-platform/internal/errors"
	"github.com/eliezer-r/storefront-platform/internal/utils"
	"github.com/eliezer-r/storefront-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// parseAndValidate decodes the body into dest and runs struct validation,
// writing the error response itself. Returns false when the handler should
// stop.
func parseAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, dest any) bool {
	if err := utils.DecodeJSONBody(r, dest); err != nil {
		response.Error(w, errors.BadRequestError(err.Error()))

		return false
	}

	if err := v.Struct(dest); err != nil {
		var validationErrs validator.ValidationErrors
		if stderrors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)

			return false
		}

		response.Error(w, errors.InternalError("Validation failed").WithError(err))

		return false
	}

	return true
}

func productIDFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("productId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequestError("Invalid product id")
	}

	return id, nil
}
