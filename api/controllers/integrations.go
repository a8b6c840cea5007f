package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rkhandelwal/tradebazaar-backend/api/responses"
	"github.com/rkhandelwal/tradebazaar-backend/api/validators"
	"github.com/rkhandelwal/tradebazaar-backend/internal/integrations"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/logger"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// VerifyGST checks a GST number against the registry and records the result
// on the partner account.
func VerifyGST(svc *integrations.GSTService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload struct {
			GSTNumber string `json:"gst_number" validate:"required"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Verify(r.Context(), userID, payload.GSTNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ERPSupportedSystems lists the ERP backends a partner can connect.
func ERPSupportedSystems(svc *integrations.ERPService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"systems": svc.SupportedSystems()})
	}
}

// ERPConnect stores credentials for one ERP backend on the partner account.
func ERPConnect(svc *integrations.ERPService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload struct {
			Provider    string         `json:"provider" validate:"required"`
			Credentials types.Document `json:"credentials,omitempty"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Connect(r.Context(), userID, payload.Provider, payload.Credentials)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// ERPDisconnect disables the named ERP integration.
func ERPDisconnect(svc *integrations.ERPService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		provider := chi.URLParam(r, "provider")

		if err := svc.Disconnect(r.Context(), userID, provider); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "disconnected"})
	}
}

// ERPSync runs a sync against an enabled ERP integration.
func ERPSync(svc *integrations.ERPService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		provider := chi.URLParam(r, "provider")

		result, err := svc.Sync(r.Context(), userID, provider)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
