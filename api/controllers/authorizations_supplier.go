package controllers

import (
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

type decisionBody struct {
	Reason       string `json:"reason" validate:"required"`
	CooldownDays *int   `json:"cooldown_days,omitempty"`
}

// SupplierAuthorizationInbox lists requests against the supplier's
// catalog, each annotated with the requesting seller's slot usage.
func SupplierAuthorizationInbox(svc authz.Service, logg *logger.Logger) http.HandlerFunc {
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
		if act.SupplierID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "supplier context missing"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := authz.SupplierInboxFilters{}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseAuthorizationStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			filters.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("product_id")); raw != "" {
			productID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid product_id filter"))
				return
			}
			filters.ProductID = &productID
		}

		params := pagination.Params{Limit: limit, Cursor: strings.TrimSpace(r.URL.Query().Get("cursor"))}

		inbox, err := svc.SupplierInbox(r.Context(), *act.SupplierID, params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, inbox)
	}
}

// SupplierAuthorizationApprove grants a pending request a slot.
func SupplierAuthorizationApprove(svc authz.Service, logg *logger.Logger) http.HandlerFunc {
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

		view, err := svc.Approve(r.Context(), authz.ApproveInput{
			AuthorizationID: id,
			ActorUserID:     act.UserID,
			ActorSupplierID: act.SupplierID,
			ActorRole:       act.Role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// SupplierAuthorizationReject turns down a pending request and starts
// the seller's cooldown for the product.
func SupplierAuthorizationReject(svc authz.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body decisionBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Reject(r.Context(), authz.RejectInput{
			AuthorizationID: id,
			Reason:          strings.TrimSpace(body.Reason),
			CooldownDays:    body.CooldownDays,
			ActorUserID:     act.UserID,
			ActorSupplierID: act.SupplierID,
			ActorRole:       act.Role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// SupplierAuthorizationRevoke withdraws an approved authorization.
// Admins reach the same handler through their own route.
func SupplierAuthorizationRevoke(svc authz.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body decisionBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Revoke(r.Context(), authz.RevokeInput{
			AuthorizationID: id,
			Reason:          strings.TrimSpace(body.Reason),
			CooldownDays:    body.CooldownDays,
			ActorUserID:     act.UserID,
			ActorSupplierID: act.SupplierID,
			ActorRole:       act.Role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}
