package models

import (
	"time"

	"github.com/google/uuid"
)

// Seller represents a storefront operator requesting product authorizations.
// MaxApprovedOverride, when set, replaces the platform-wide approved-slot cap.
type Seller struct {
	ID                  uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyName         string     `gorm:"column:company_name;not null"`
	DBAName             *string    `gorm:"column:dba_name"`
	Email               *string    `gorm:"column:email"`
	Phone               *string    `gorm:"column:phone"`
	MaxApprovedOverride *int       `gorm:"column:max_approved_override"`
	IsActive            bool       `gorm:"column:is_active;not null;default:true"`
	OwnerID             uuid.UUID  `gorm:"column:owner;type:uuid;not null"`
	LastActiveAt        *time.Time `gorm:"column:last_active_at"`
	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
