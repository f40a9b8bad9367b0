package authz

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sellerbridge/sellerbridge-backend/pkg/db/models"
	"github.com/sellerbridge/sellerbridge-backend/pkg/pagination"
)

// Repository defines persistence operations for authorization rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, row *models.AuthorizationRequest) (*models.AuthorizationRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.AuthorizationRequest, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.AuthorizationRequest, error)
	FindActiveByPair(ctx context.Context, sellerID, productID uuid.UUID) (*models.AuthorizationRequest, error)
	FindLatestTerminalByPair(ctx context.Context, sellerID, productID uuid.UUID) (*models.AuthorizationRequest, error)
	CountApproved(ctx context.Context, sellerID uuid.UUID) (int, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListBySeller(ctx context.Context, sellerID uuid.UUID, params pagination.Params, filters SellerViewFilters) ([]models.AuthorizationRequest, string, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID, params pagination.Params, filters SupplierInboxFilters) ([]models.AuthorizationRequest, string, error)
}

// SellerDirectory resolves seller rows; FindByIDForUpdate takes a row lock
// so per-seller approvals serialize.
type SellerDirectory interface {
	WithTx(tx *gorm.DB) SellerDirectory
	FindByID(ctx context.Context, id uuid.UUID) (*models.Seller, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Seller, error)
}

// ProductCatalog resolves product rows for request validation.
type ProductCatalog interface {
	WithTx(tx *gorm.DB) ProductCatalog
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}
