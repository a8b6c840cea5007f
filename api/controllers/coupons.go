package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/api/responses"
	"github.com/rkhandelwal/tradebazaar-backend/api/validators"
	"github.com/rkhandelwal/tradebazaar-backend/internal/coupons"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/logger"
)

// ValidateCoupon quotes the discount a code yields against a subtotal
// without consuming a use.
func ValidateCoupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Code     string `json:"code" validate:"required"`
			Subtotal string `json:"subtotal" validate:"required"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		subtotal, err := decimal.NewFromString(payload.Subtotal)
		if err != nil || subtotal.IsNegative() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid subtotal"))
			return
		}

		quote, err := svc.ValidateCoupon(r.Context(), payload.Code, subtotal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
