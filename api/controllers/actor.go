package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rkhandelwal/tradebazaar-backend/api/middleware"
	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
	pkgerrors "github.com/rkhandelwal/tradebazaar-backend/pkg/errors"
)

// actorID extracts the authenticated user's id from the request context.
func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

func actorType(r *http.Request) enums.UserType {
	return middleware.UserTypeFromContext(r.Context())
}

func actorIsAdmin(r *http.Request) bool {
	return actorType(r) == enums.UserTypeAdmin
}

// pathUUID parses a chi URL parameter as a UUID.
func pathUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+field)
	}
	return id, nil
}
