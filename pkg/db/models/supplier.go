package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Supplier represents a product owner who decides authorization requests.
type Supplier struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyName  string         `gorm:"column:company_name;not null"`
	DBAName      *string        `gorm:"column:dba_name"`
	Email        *string        `gorm:"column:email"`
	Phone        *string        `gorm:"column:phone"`
	Categories   pq.StringArray `gorm:"column:categories;type:text[]"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	OwnerID      uuid.UUID      `gorm:"column:owner;type:uuid;not null"`
	LastActiveAt *time.Time     `gorm:"column:last_active_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
