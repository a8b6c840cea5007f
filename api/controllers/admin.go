package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rkhandelwal/tradebazaar-backend/api/responses"
	"github.com/rkhandelwal/tradebazaar-backend/api/validators"
	"github.com/rkhandelwal/tradebazaar-backend/internal/coupons"
	ordersvc "github.com/rkhandelwal/tradebazaar-backend/internal/orders"
	productsvc "github.com/rkhandelwal/tradebazaar-backend/internal/products"
	"github.com/rkhandelwal/tradebazaar-backend/internal/settings"
	"github.com/rkhandelwal/tradebazaar-backend/internal/users"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/logger"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// AdminListPartners returns partner accounts filtered by verification status.
// Default is the pending review queue.
func AdminListPartners(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := enums.VerificationStatusPending
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed, err := enums.ParseVerificationStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status"))
				return
			}
			status = parsed
		}

		page, err := svc.ListPartners(r.Context(), &status, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// AdminVerifyPartner approves or rejects a pending partner account.
func AdminVerifyPartner(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partnerID, err := pathUUID(chi.URLParam(r, "partnerId"), "partner id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		adminID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload struct {
			Approve        *bool   `json:"approve" validate:"required"`
			CommissionRate *string `json:"commission_rate,omitempty"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := users.ReviewPartnerInput{Approve: *payload.Approve}
		if payload.CommissionRate != nil {
			rate, err := parseDecimal(*payload.CommissionRate, "commission_rate")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.CommissionRate = &rate
		}

		dto, err := svc.ReviewPartner(r.Context(), adminID, partnerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AdminApproveProduct moves a listing through moderation.
func AdminApproveProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := pathUUID(chi.URLParam(r, "productId"), "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload struct {
			Status string `json:"status" validate:"required"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status := enums.ApprovalStatus(strings.ToLower(strings.TrimSpace(payload.Status)))
		if !status.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid approval status"))
			return
		}

		if err := svc.SetApproval(r.Context(), productID, status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": string(status)})
	}
}

// AdminUpdateOrderStatus advances an order along the fulfilment pipeline.
func AdminUpdateOrderStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := pathUUID(chi.URLParam(r, "orderId"), "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload struct {
			Status string `json:"status" validate:"required"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseOrderStatus(strings.ToLower(strings.TrimSpace(payload.Status)))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status"))
			return
		}

		dto, err := svc.UpdateStatus(r.Context(), orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AdminGetSettings returns the stored payload for one settings kind.
func AdminGetSettings(store *settings.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := chi.URLParam(r, "kind")
		payload, err := store.Get(kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"kind": kind, "payload": payload})
	}
}

// AdminUpdateSettings replaces the payload for one settings kind and
// refreshes the in-memory snapshot.
func AdminUpdateSettings(store *settings.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := chi.URLParam(r, "kind")

		// Settings payloads are free-form documents, so skip struct validation.
		var payload types.Document
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}

		if err := store.Update(r.Context(), kind, payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"kind": kind, "payload": payload})
	}
}

type couponRequest struct {
	Code              string  `json:"code" validate:"required"`
	DiscountType      string  `json:"discount_type" validate:"required"`
	DiscountValue     string  `json:"discount_value" validate:"required"`
	MinOrderAmount    string  `json:"min_order_amount,omitempty"`
	MaxDiscountAmount *string `json:"max_discount_amount,omitempty"`
	IsActive          *bool   `json:"is_active,omitempty"`
	ValidFrom         *string `json:"valid_from,omitempty"`
	ValidUntil        *string `json:"valid_until,omitempty"`
	UsageLimit        *int    `json:"usage_limit,omitempty" validate:"omitempty,min=1"`
}

func (c couponRequest) toInput() (coupons.CouponInput, error) {
	value, err := parseDecimal(c.DiscountValue, "discount_value")
	if err != nil {
		return coupons.CouponInput{}, err
	}
	minOrder, err := parseOptionalDecimal(c.MinOrderAmount, "min_order_amount")
	if err != nil {
		return coupons.CouponInput{}, err
	}

	input := coupons.CouponInput{
		Code:           c.Code,
		DiscountType:   enums.DiscountType(strings.ToLower(strings.TrimSpace(c.DiscountType))),
		DiscountValue:  value,
		MinOrderAmount: minOrder,
		IsActive:       true,
		UsageLimit:     c.UsageLimit,
	}
	if c.IsActive != nil {
		input.IsActive = *c.IsActive
	}
	if c.MaxDiscountAmount != nil {
		max, err := parseDecimal(*c.MaxDiscountAmount, "max_discount_amount")
		if err != nil {
			return coupons.CouponInput{}, err
		}
		input.MaxDiscountAmount = &max
	}
	if c.ValidFrom != nil {
		from, err := parseTime(*c.ValidFrom, "valid_from")
		if err != nil {
			return coupons.CouponInput{}, err
		}
		input.ValidFrom = &from
	}
	if c.ValidUntil != nil {
		until, err := parseTime(*c.ValidUntil, "valid_until")
		if err != nil {
			return coupons.CouponInput{}, err
		}
		input.ValidUntil = &until
	}
	return input, nil
}

func parseTime(raw, field string) (time.Time, error) {
	value, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+field)
	}
	return value, nil
}

// AdminCreateCoupon registers a new discount code.
func AdminCreateCoupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload couponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.CreateCoupon(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, coupon)
	}
}

// AdminUpdateCoupon replaces a coupon's terms.
func AdminUpdateCoupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		couponID, err := pathUUID(chi.URLParam(r, "couponId"), "coupon id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload couponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.UpdateCoupon(r.Context(), couponID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, coupon)
	}
}

// AdminDeleteCoupon removes a coupon.
func AdminDeleteCoupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		couponID, err := pathUUID(chi.URLParam(r, "couponId"), "coupon id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCoupon(r.Context(), couponID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminListCoupons returns every coupon.
func AdminListCoupons(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListCoupons(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"coupons": items})
	}
}
