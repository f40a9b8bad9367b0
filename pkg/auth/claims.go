package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID     uuid.UUID
	Role       enums.UserRole
	SellerID   *uuid.UUID
	SupplierID *uuid.UUID
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID     uuid.UUID      `json:"user_id"`
	Role       enums.UserRole `json:"role"`
	SellerID   *uuid.UUID     `json:"seller_id,omitempty"`
	SupplierID *uuid.UUID     `json:"supplier_id,omitempty"`
	jwt.RegisteredClaims
}
