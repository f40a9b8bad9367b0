package authz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sellerbridge/sellerbridge-backend/pkg/db/models"
	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
	"github.com/sellerbridge/sellerbridge-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an authorization repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, row *models.AuthorizationRequest) (*models.AuthorizationRequest, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.AuthorizationRequest, error) {
	var row models.AuthorizationRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.AuthorizationRequest, error) {
	var row models.AuthorizationRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindActiveByPair(ctx context.Context, sellerID, productID uuid.UUID) (*models.AuthorizationRequest, error) {
	var row models.AuthorizationRequest
	err := r.db.WithContext(ctx).
		Where("seller_id = ? AND product_id = ?", sellerID, productID).
		Where("status IN ?", []enums.AuthorizationStatus{
			enums.AuthorizationStatusRequested,
			enums.AuthorizationStatusApproved,
		}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindLatestTerminalByPair(ctx context.Context, sellerID, productID uuid.UUID) (*models.AuthorizationRequest, error) {
	var row models.AuthorizationRequest
	err := r.db.WithContext(ctx).
		Where("seller_id = ? AND product_id = ?", sellerID, productID).
		Where("status IN ?", []enums.AuthorizationStatus{
			enums.AuthorizationStatusRejected,
			enums.AuthorizationStatusRevoked,
			enums.AuthorizationStatusCancelled,
		}).
		Order("updated_at DESC").
		Order("id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) CountApproved(ctx context.Context, sellerID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AuthorizationRequest{}).
		Where("seller_id = ? AND status = ?", sellerID, enums.AuthorizationStatusApproved).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.AuthorizationRequest{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ListBySeller(ctx context.Context, sellerID uuid.UUID, params pagination.Params, filters SellerViewFilters) ([]models.AuthorizationRequest, string, error) {
	query := r.db.WithContext(ctx).
		Model(&models.AuthorizationRequest{}).
		Where("seller_id = ?", sellerID)
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	return r.listPage(query, params)
}

func (r *repository) ListBySupplier(ctx context.Context, supplierID uuid.UUID, params pagination.Params, filters SupplierInboxFilters) ([]models.AuthorizationRequest, string, error) {
	query := r.db.WithContext(ctx).
		Model(&models.AuthorizationRequest{}).
		Where("supplier_id = ?", supplierID)
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.ProductID != nil {
		query = query.Where("product_id = ?", *filters.ProductID)
	}
	return r.listPage(query, params)
}

// listPage applies the shared (created_at, id) keyset ordering and returns
// the next cursor when more rows remain.
func (r *repository) listPage(query *gorm.DB, params pagination.Params) ([]models.AuthorizationRequest, string, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	limit := pagination.NormalizeLimit(params.Limit)
	query = query.Order("created_at DESC").Order("id DESC").Limit(limit + 1)

	var rows []models.AuthorizationRequest
	if err := query.Find(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[limit-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, nextCursor, nil
}
