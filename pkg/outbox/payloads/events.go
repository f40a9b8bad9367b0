package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
)

// AuthorizationRequestedEvent is emitted when a seller asks to carry a product.
type AuthorizationRequestedEvent struct {
	AuthorizationID uuid.UUID `json:"authorization_id"`
	SellerID        uuid.UUID `json:"seller_id"`
	SupplierID      uuid.UUID `json:"supplier_id"`
	ProductID       uuid.UUID `json:"product_id"`
	Message         string    `json:"message,omitempty"`
	RequestedAt     time.Time `json:"requested_at"`
}

// AuthorizationApprovedEvent is emitted when a supplier or admin grants a request.
type AuthorizationApprovedEvent struct {
	AuthorizationID uuid.UUID `json:"authorization_id"`
	SellerID        uuid.UUID `json:"seller_id"`
	SupplierID      uuid.UUID `json:"supplier_id"`
	ProductID       uuid.UUID `json:"product_id"`
	DecidedBy       uuid.UUID `json:"decided_by"`
	DecidedAt       time.Time `json:"decided_at"`
	SlotsRemaining  int       `json:"slots_remaining"`
}

// AuthorizationRejectedEvent carries the decision reason and resulting cooldown.
type AuthorizationRejectedEvent struct {
	AuthorizationID uuid.UUID `json:"authorization_id"`
	SellerID        uuid.UUID `json:"seller_id"`
	SupplierID      uuid.UUID `json:"supplier_id"`
	ProductID       uuid.UUID `json:"product_id"`
	DecidedBy       uuid.UUID `json:"decided_by"`
	DecidedAt       time.Time `json:"decided_at"`
	Reason          string    `json:"reason"`
	CooldownUntil   time.Time `json:"cooldown_until"`
}

// AuthorizationCancelledEvent is emitted when a seller withdraws a pending request.
type AuthorizationCancelledEvent struct {
	AuthorizationID uuid.UUID `json:"authorization_id"`
	SellerID        uuid.UUID `json:"seller_id"`
	SupplierID      uuid.UUID `json:"supplier_id"`
	ProductID       uuid.UUID `json:"product_id"`
	CancelledAt     time.Time `json:"cancelled_at"`
}

// AuthorizationRevokedEvent is emitted when an approved authorization is withdrawn.
type AuthorizationRevokedEvent struct {
	AuthorizationID uuid.UUID `json:"authorization_id"`
	SellerID        uuid.UUID `json:"seller_id"`
	SupplierID      uuid.UUID `json:"supplier_id"`
	ProductID       uuid.UUID `json:"product_id"`
	RevokedBy       uuid.UUID `json:"revoked_by"`
	RevokedAt       time.Time `json:"revoked_at"`
	Reason          string    `json:"reason"`
	CooldownUntil   time.Time `json:"cooldown_until"`
}

// ProductStatusChangedEvent notifies catalog consumers about listing changes.
type ProductStatusChangedEvent struct {
	ProductID  uuid.UUID           `json:"product_id"`
	SupplierID uuid.UUID           `json:"supplier_id"`
	Status     enums.ProductStatus `json:"status"`
	ChangedAt  time.Time           `json:"changed_at"`
}
