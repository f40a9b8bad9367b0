package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	dbpkg "github.com/sellerbridge/sellerbridge-backend/pkg/db"
	"github.com/sellerbridge/sellerbridge-backend/pkg/db/models"
	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
	pkgerrors "github.com/sellerbridge/sellerbridge-backend/pkg/errors"
	"github.com/sellerbridge/sellerbridge-backend/pkg/outbox"
	"github.com/sellerbridge/sellerbridge-backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service exposes supplier catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, supplierID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, supplierID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	SetStatus(ctx context.Context, actorUserID uuid.UUID, supplierID, productID uuid.UUID, status enums.ProductStatus) (*ProductDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
	now    func() time.Time
}

// NewService builds the supplier catalog service.
func NewService(repo Repository, tx txRunner, outboxSvc outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{repo: repo, tx: tx, outbox: outboxSvc, now: time.Now}, nil
}

func (s *service) CreateProduct(ctx context.Context, supplierID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "supplier context missing")
	}
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if input.WholesalePrice.IsNegative() || input.WholesalePrice.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wholesale price must be positive")
	}
	moq := input.MOQ
	if moq <= 0 {
		moq = 1
	}

	existing, err := s.repo.FindBySupplierSKU(ctx, supplierID, sku)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check sku")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
	}

	row := &models.Product{
		SupplierID:     supplierID,
		SKU:            sku,
		Title:          strings.TrimSpace(input.Title),
		Subtitle:       input.Subtitle,
		Description:    input.Description,
		Categories:     pq.StringArray(input.Categories),
		Status:         enums.ProductStatusDraft,
		WholesalePrice: input.WholesalePrice,
		RetailPrice:    input.RetailPrice,
		MOQ:            moq,
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		if dbpkg.IsUniqueViolation(err, "ux_products_supplier_sku") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return toProductDTO(created), nil
}

func (s *service) UpdateProduct(ctx context.Context, supplierID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	row, err := s.ownedProduct(ctx, supplierID, productID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
		}
		updates["sku"] = sku
		row.SKU = sku
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
		}
		updates["title"] = title
		row.Title = title
	}
	if input.Subtitle != nil {
		updates["subtitle"] = *input.Subtitle
		row.Subtitle = input.Subtitle
	}
	if input.Description != nil {
		updates["description"] = *input.Description
		row.Description = input.Description
	}
	if input.Categories != nil {
		updates["categories"] = pq.StringArray(*input.Categories)
		row.Categories = pq.StringArray(*input.Categories)
	}
	if input.WholesalePrice != nil {
		if input.WholesalePrice.IsNegative() || input.WholesalePrice.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "wholesale price must be positive")
		}
		updates["wholesale_price"] = *input.WholesalePrice
		row.WholesalePrice = *input.WholesalePrice
	}
	if input.RetailPrice != nil {
		updates["retail_price"] = *input.RetailPrice
		row.RetailPrice = input.RetailPrice
	}
	if input.MOQ != nil {
		if *input.MOQ <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "moq must be positive")
		}
		updates["moq"] = *input.MOQ
		row.MOQ = *input.MOQ
	}
	if len(updates) == 0 {
		return toProductDTO(row), nil
	}

	if err := s.repo.Update(ctx, row.ID, updates); err != nil {
		if dbpkg.IsUniqueViolation(err, "ux_products_supplier_sku") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return toProductDTO(row), nil
}

// SetStatus moves a listing between draft, active, and archived and notifies
// catalog consumers through the outbox.
func (s *service) SetStatus(ctx context.Context, actorUserID uuid.UUID, supplierID, productID uuid.UUID, status enums.ProductStatus) (*ProductDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
	}

	var row *models.Product
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		found, err := repo.FindByID(ctx, productID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if found.SupplierID != supplierID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "product does not belong to supplier")
		}
		if found.Status == status {
			row = found
			return nil
		}

		if err := repo.Update(ctx, found.ID, map[string]any{"status": status}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product status")
		}
		found.Status = status
		row = found

		now := s.now().UTC()
		supplier := supplierID
		event := outbox.DomainEvent{
			EventType:     enums.EventProductStatusChanged,
			AggregateType: enums.AggregateProduct,
			AggregateID:   found.ID,
			Version:       1,
			Actor: &outbox.ActorRef{
				UserID:     actorUserID,
				SupplierID: &supplier,
				Role:       enums.UserRoleSupplier.String(),
			},
			Data: payloads.ProductStatusChangedEvent{
				ProductID:  found.ID,
				SupplierID: found.SupplierID,
				Status:     status,
				ChangedAt:  now,
			},
		}
		return s.outbox.Emit(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}
	return toProductDTO(row), nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	row, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return toProductDTO(row), nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	if input.SupplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}
	rows, nextCursor, err := s.repo.ListBySupplier(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *toProductDTO(&rows[i]))
	}
	return &ProductListResult{Products: dtos, NextCursor: nextCursor}, nil
}

func (s *service) ownedProduct(ctx context.Context, supplierID, productID uuid.UUID) (*models.Product, error) {
	row, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if row.SupplierID != supplierID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product does not belong to supplier")
	}
	return row, nil
}

func toProductDTO(row *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:             row.ID,
		SupplierID:     row.SupplierID,
		SKU:            row.SKU,
		Title:          row.Title,
		Subtitle:       row.Subtitle,
		Description:    row.Description,
		Categories:     []string(row.Categories),
		Status:         row.Status,
		WholesalePrice: row.WholesalePrice,
		RetailPrice:    row.RetailPrice,
		MOQ:            row.MOQ,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
