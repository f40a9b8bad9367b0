package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
)

// Product represents a supplier listing that sellers request authorization for.
type Product struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SupplierID     uuid.UUID           `gorm:"column:supplier_id;type:uuid;not null"`
	SKU            string              `gorm:"column:sku;not null"`
	Title          string              `gorm:"column:title;not null"`
	Subtitle       *string             `gorm:"column:subtitle"`
	Description    *string             `gorm:"column:description"`
	Categories     pq.StringArray      `gorm:"column:categories;type:text[]"`
	Status         enums.ProductStatus `gorm:"column:status;type:product_status;not null;default:'draft'"`
	WholesalePrice decimal.Decimal     `gorm:"column:wholesale_price;type:numeric(12,2);not null"`
	RetailPrice    *decimal.Decimal    `gorm:"column:retail_price;type:numeric(12,2)"`
	MOQ            int                 `gorm:"column:moq;not null;default:1"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
