package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sellerbridge/sellerbridge-backend/api/responses"
	"github.com/sellerbridge/sellerbridge-backend/api/validators"
	"github.com/sellerbridge/sellerbridge-backend/internal/authz"
	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
	pkgerrors "github.com/sellerbridge/sellerbridge-backend/pkg/errors"
	"github.com/sellerbridge/sellerbridge-backend/pkg/logger"
	"github.com/sellerbridge/sellerbridge-backend/pkg/pagination"
)

type authorizationRequestBody struct {
	ProductID string          `json:"product_id" validate:"required"`
	Message   *string         `json:"message,omitempty" validate:"omitempty,max=2000"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// SellerAuthorizationCreate opens a new authorization request for the
// seller bound to the token.
func SellerAuthorizationCreate(svc authz.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "authorization service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if act.SellerID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		var body authorizationRequestBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(strings.TrimSpace(body.ProductID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_id"))
			return
		}

		var message *string
		if body.Message != nil {
			trimmed := validators.SanitizeString(*body.Message, 2000)
			if trimmed != "" {
				message = &trimmed
			}
		}

		view, err := svc.Request(r.Context(), authz.RequestInput{
			SellerID:    *act.SellerID,
			ProductID:   productID,
			Message:     message,
			Metadata:    body.Metadata,
			ActorUserID: act.UserID,
			ActorRole:   act.Role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// SellerAuthorizationCancel withdraws a pending request.
func SellerAuthorizationCancel(svc authz.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "authorization service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "authorizationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Cancel(r.Context(), authz.CancelInput{
			AuthorizationID: id,
			ActorUserID:     act.UserID,
			ActorSellerID:   act.SellerID,
			ActorRole:       act.Role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// SellerAuthorizationList returns the seller's authorizations plus their
// slot summary, newest first.
func SellerAuthorizationList(svc authz.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "authorization service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if act.SellerID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := authz.SellerViewFilters{}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseAuthorizationStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			filters.Status = &status
		}

		params := pagination.Params{Limit: limit, Cursor: strings.TrimSpace(r.URL.Query().Get("cursor"))}

		view, err := svc.SellerView(r.Context(), *act.SellerID, params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// SellerAuthorizationLimits surfaces the seller's slot usage.
func SellerAuthorizationLimits(svc authz.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "authorization service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if act.SellerID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		summary, err := svc.SellerLimits(r.Context(), *act.SellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// AuthorizationDetail returns a single authorization to a party on the
// request. Outsiders get a not-found rather than a forbidden so the
// existence of the pair is not leaked.
func AuthorizationDetail(svc authz.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "authorization service unavailable"))
			return
		}

		act, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "authorizationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !actorCanSee(act, view) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "authorization not found"))
			return
		}

		responses.WriteSuccess(w, view)
	}
}

func actorCanSee(act actor, view *authz.AuthorizationView) bool {
	if act.Role == enums.UserRoleAdmin {
		return true
	}
	if act.SellerID != nil && *act.SellerID == view.SellerID {
		return true
	}
	if act.SupplierID != nil && *act.SupplierID == view.SupplierID {
		return true
	}
	return false
}
