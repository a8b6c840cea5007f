package controllers

import (
	"net/http"

	"github.com/rkhandelwal/tradebazaar-backend/api/responses"
	"github.com/rkhandelwal/tradebazaar-backend/api/validators"
	aisvc "github.com/rkhandelwal/tradebazaar-backend/internal/ai"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/logger"
)

// GenerateContent produces listing copy for a partner's product.
func GenerateContent(svc *aisvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload aisvc.GenerateContentInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		content, err := svc.GenerateContent(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, content)
	}
}

// GenerateImage produces a product render for a prompt.
func GenerateImage(svc *aisvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload aisvc.GenerateImageInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		image, err := svc.GenerateImage(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, image)
	}
}
