package authz

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sellerbridge/sellerbridge-backend/pkg/db/models"
)

type sellerDirectory struct {
	db *gorm.DB
}

// NewSellerDirectory builds the default seller lookup used by the workflow.
func NewSellerDirectory(db *gorm.DB) SellerDirectory {
	return &sellerDirectory{db: db}
}

func (d *sellerDirectory) WithTx(tx *gorm.DB) SellerDirectory {
	if tx == nil {
		return d
	}
	return &sellerDirectory{db: tx}
}

func (d *sellerDirectory) FindByID(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	err := d.db.WithContext(ctx).
		Where("id = ?", id).
		First(&seller).Error
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

func (d *sellerDirectory) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	err := d.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&seller).Error
	if err != nil {
		return nil, err
	}
	return &seller, nil
}

type productCatalog struct {
	db *gorm.DB
}

// NewProductCatalog builds the default product lookup used by the workflow.
func NewProductCatalog(db *gorm.DB) ProductCatalog {
	return &productCatalog{db: db}
}

func (c *productCatalog) WithTx(tx *gorm.DB) ProductCatalog {
	if tx == nil {
		return c
	}
	return &productCatalog{db: tx}
}

func (c *productCatalog) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := c.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}
