package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rkhandelwal/tradebazaar-backend/api/responses"
	"github.com/rkhandelwal/tradebazaar-backend/api/validators"
	cartsvc "github.com/rkhandelwal/tradebazaar-backend/internal/cart"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/logger"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// GetCart returns the buyer's basket priced for their user type.
func GetCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetCart(r.Context(), userID, actorType(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// UpsertCartItem adds a line or replaces its quantity.
func UpsertCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload struct {
			ProductID        string            `json:"product_id" validate:"required"`
			VariantID        *string           `json:"variant_id,omitempty"`
			Quantity         int               `json:"quantity" validate:"required,min=1"`
			CustomDimensions *types.Dimensions `json:"custom_dimensions,omitempty"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(payload.ProductID, "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := cartsvc.UpsertItemInput{
			ProductID:        productID,
			Quantity:         payload.Quantity,
			CustomDimensions: payload.CustomDimensions,
		}
		if payload.VariantID != nil {
			variantID, err := pathUUID(*payload.VariantID, "variant id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.VariantID = &variantID
		}

		dto, err := svc.UpsertItem(r.Context(), userID, actorType(r), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// RemoveCartItem deletes one line from the basket.
func RemoveCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(chi.URLParam(r, "itemId"), "item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.RemoveItem(r.Context(), userID, actorType(r), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ClearCart empties the basket.
func ClearCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ClearCart(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
