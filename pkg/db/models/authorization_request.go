package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
)

// AuthorizationRequest tracks the seller-product authorization lifecycle.
// A seller/product pair has at most one row in an active status
// (requested or approved); the partial unique index in the schema
// backstops that invariant under concurrent writes.
type AuthorizationRequest struct {
	ID         uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID   uuid.UUID                 `gorm:"column:seller_id;type:uuid;not null"`
	ProductID  uuid.UUID                 `gorm:"column:product_id;type:uuid;not null"`
	SupplierID uuid.UUID                 `gorm:"column:supplier_id;type:uuid;not null"`
	Status     enums.AuthorizationStatus `gorm:"column:status;type:authorization_status;not null;default:'requested'"`

	Message  *string         `gorm:"column:message"`
	Metadata json.RawMessage `gorm:"column:metadata;type:jsonb"`

	RequestedAt      time.Time  `gorm:"column:requested_at;not null"`
	DecidedAt        *time.Time `gorm:"column:decided_at"`
	DecidedBy        *uuid.UUID `gorm:"column:decided_by;type:uuid"`
	DecisionReason   *string    `gorm:"column:decision_reason"`
	CancelledAt      *time.Time `gorm:"column:cancelled_at"`
	RevokedAt        *time.Time `gorm:"column:revoked_at"`
	RevokedBy        *uuid.UUID `gorm:"column:revoked_by;type:uuid"`
	RevocationReason *string    `gorm:"column:revocation_reason"`
	CooldownUntil    *time.Time `gorm:"column:cooldown_until"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
