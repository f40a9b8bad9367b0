package authz

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
)

// SellerLimit summarizes a seller's approved-slot budget.
type SellerLimit struct {
	CurrentCount   int `json:"current_count"`
	MaxLimit       int `json:"max_limit"`
	RemainingSlots int `json:"remaining_slots"`
}

// AuthorizationView is the projection returned from list and detail reads.
type AuthorizationView struct {
	ID               uuid.UUID                 `json:"id"`
	SellerID         uuid.UUID                 `json:"seller_id"`
	ProductID        uuid.UUID                 `json:"product_id"`
	SupplierID       uuid.UUID                 `json:"supplier_id"`
	Status           enums.AuthorizationStatus `json:"status"`
	Message          *string                   `json:"message,omitempty"`
	Metadata         json.RawMessage           `json:"metadata,omitempty"`
	RequestedAt      time.Time                 `json:"requested_at"`
	DecidedAt        *time.Time                `json:"decided_at,omitempty"`
	DecidedBy        *uuid.UUID                `json:"decided_by,omitempty"`
	DecisionReason   *string                   `json:"decision_reason,omitempty"`
	CancelledAt      *time.Time                `json:"cancelled_at,omitempty"`
	RevokedAt        *time.Time                `json:"revoked_at,omitempty"`
	RevokedBy        *uuid.UUID                `json:"revoked_by,omitempty"`
	RevocationReason *string                   `json:"revocation_reason,omitempty"`
	CooldownUntil    *time.Time                `json:"cooldown_until,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
}

// SellerView bundles a seller's authorizations with their limit summary.
type SellerView struct {
	Authorizations []AuthorizationView `json:"authorizations"`
	Limit          SellerLimit         `json:"limit"`
	NextCursor     string              `json:"next_cursor,omitempty"`
}

// SellerViewFilters narrows the seller-facing list.
type SellerViewFilters struct {
	Status *enums.AuthorizationStatus
}

// SupplierInboxEntry enriches each inbox row with the requesting seller's
// current limit so the supplier UI can warn before approving into an
// exhausted seller.
type SupplierInboxEntry struct {
	Authorization AuthorizationView `json:"authorization"`
	SellerLimit   SellerLimit       `json:"seller_limit"`
}

// SupplierInbox is the supplier-facing projection.
type SupplierInbox struct {
	Entries    []SupplierInboxEntry `json:"entries"`
	NextCursor string               `json:"next_cursor,omitempty"`
}

// SupplierInboxFilters narrows the supplier-facing list.
type SupplierInboxFilters struct {
	Status    *enums.AuthorizationStatus
	ProductID *uuid.UUID
}

// RequestInput captures a seller's request to carry a product.
type RequestInput struct {
	SellerID    uuid.UUID
	ProductID   uuid.UUID
	Message     *string
	Metadata    json.RawMessage
	ActorUserID uuid.UUID
	ActorRole   enums.UserRole
}

// ApproveInput captures a supplier/admin approval.
type ApproveInput struct {
	AuthorizationID uuid.UUID
	ActorUserID     uuid.UUID
	ActorSupplierID *uuid.UUID
	ActorRole       enums.UserRole
}

// RejectInput captures a supplier/admin rejection with its cooldown policy.
type RejectInput struct {
	AuthorizationID uuid.UUID
	Reason          string
	CooldownDays    *int
	ActorUserID     uuid.UUID
	ActorSupplierID *uuid.UUID
	ActorRole       enums.UserRole
}

// CancelInput captures a seller withdrawing their own pending request.
type CancelInput struct {
	AuthorizationID uuid.UUID
	ActorUserID     uuid.UUID
	ActorSellerID   *uuid.UUID
	ActorRole       enums.UserRole
}

// RevokeInput captures withdrawal of an approved authorization.
type RevokeInput struct {
	AuthorizationID uuid.UUID
	Reason          string
	CooldownDays    *int
	ActorUserID     uuid.UUID
	ActorSupplierID *uuid.UUID
	ActorRole       enums.UserRole
}
