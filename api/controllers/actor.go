package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sellerbridge/sellerbridge-backend/api/middleware"
	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
	pkgerrors "github.com/sellerbridge/sellerbridge-backend/pkg/errors"
)

// actor is the authenticated principal resolved from the request context.
type actor struct {
	UserID     uuid.UUID
	Role       enums.UserRole
	SellerID   *uuid.UUID
	SupplierID *uuid.UUID
}

func actorFromRequest(r *http.Request) (actor, error) {
	ctx := r.Context()

	rawUser := middleware.UserIDFromContext(ctx)
	if rawUser == "" {
		return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(rawUser)
	if err != nil {
		return actor{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}

	role, err := enums.ParseUserRole(middleware.RoleFromContext(ctx))
	if err != nil {
		return actor{}, pkgerrors.New(pkgerrors.CodeForbidden, "unknown actor role")
	}

	a := actor{UserID: userID, Role: role}

	if raw := middleware.SellerIDFromContext(ctx); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return actor{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid seller id")
		}
		a.SellerID = &id
	}
	if raw := middleware.SupplierIDFromContext(ctx); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return actor{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supplier id")
		}
		a.SupplierID = &id
	}

	return a, nil
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+param)
	}
	return id, nil
}
