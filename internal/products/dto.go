package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
)

// ProductDTO represents the supplier product payload returned to clients.
type ProductDTO struct {
	ID             uuid.UUID           `json:"id"`
	SupplierID     uuid.UUID           `json:"supplier_id"`
	SKU            string              `json:"sku"`
	Title          string              `json:"title"`
	Subtitle       *string             `json:"subtitle,omitempty"`
	Description    *string             `json:"description,omitempty"`
	Categories     []string            `json:"categories"`
	Status         enums.ProductStatus `json:"status"`
	WholesalePrice decimal.Decimal     `json:"wholesale_price"`
	RetailPrice    *decimal.Decimal    `json:"retail_price,omitempty"`
	MOQ            int                 `json:"moq"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	SKU            string
	Title          string
	Subtitle       *string
	Description    *string
	Categories     []string
	WholesalePrice decimal.Decimal
	RetailPrice    *decimal.Decimal
	MOQ            int
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	SKU            *string
	Title          *string
	Subtitle       *string
	Description    *string
	Categories     *[]string
	WholesalePrice *decimal.Decimal
	RetailPrice    *decimal.Decimal
	MOQ            *int
}

// ListProductsInput scopes and filters a supplier catalog listing.
type ListProductsInput struct {
	SupplierID uuid.UUID
	Status     *enums.ProductStatus
	Limit      int
	Cursor     string
}

// ProductListResult is a cursor page of products.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}
