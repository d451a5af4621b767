package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/yaxyebile/admin/internal/app/store"
	"github.com/yaxyebile/admin/internal/domain"
	"github.com/yaxyebile/admin/internal/infrastructure/backend"
	"github.com/yaxyebile/admin/internal/infrastructure/http/response"
)

var domainValidationErrors = []error{
	domain.ErrInvalidProductName,
	domain.ErrInvalidProductSlug,
	domain.ErrMissingProductCategory,
	domain.ErrNegativeProductPrice,
	domain.ErrNegativeProductStock,
	domain.ErrInvalidCategoryName,
	domain.ErrInvalidCategorySlug,
	domain.ErrInvalidQuantity,
	domain.ErrEmptyCart,
	domain.ErrMissingOrderUser,
	domain.ErrEmptyOrder,
	domain.ErrNegativeOrderTotal,
}

// writeError maps store and backend failures onto HTTP statuses: validation
// to 400, missing entities to 404, duplicate in-flight mutations to 409,
// and any backend failure to 502 so callers can tell gateway bugs from
// backend outages.
func writeError(w http.ResponseWriter, err error) {
	var valErrs validator.ValidationErrors
	var httpErr *backend.HTTPError
	var netErr *backend.NetworkError

	switch {
	case errors.As(err, &valErrs):
		response.Error(w, http.StatusBadRequest, err)
	case isDomainValidation(err):
		response.Error(w, http.StatusBadRequest, err)
	case errors.Is(err, store.ErrOperationInFlight):
		response.Error(w, http.StatusConflict, err)
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		backend.IsNotFound(err):
		response.Error(w, http.StatusNotFound, err)
	case errors.As(err, &httpErr), errors.As(err, &netErr):
		response.Error(w, http.StatusBadGateway, err)
	default:
		response.Error(w, http.StatusInternalServerError, err)
	}
}

func isDomainValidation(err error) bool {
	for _, sentinel := range domainValidationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
