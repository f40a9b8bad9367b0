package product

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sellerbridge/sellerbridge-backend/pkg/db/models"
	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
)

func setupProductTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  supplier_id TEXT NOT NULL,
  sku TEXT NOT NULL,
  title TEXT NOT NULL,
  subtitle TEXT,
  description TEXT,
  categories TEXT,
  status TEXT NOT NULL,
  wholesale_price TEXT NOT NULL,
  retail_price TEXT,
  moq INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	return db
}

func createProduct(t *testing.T, db *gorm.DB, supplierID uuid.UUID, sku string, status enums.ProductStatus, created time.Time) *models.Product {
	t.Helper()

	row := &models.Product{
		ID:             uuid.New(),
		SupplierID:     supplierID,
		SKU:            sku,
		Title:          "Product " + sku,
		Status:         status,
		WholesalePrice: decimal.NewFromInt(20),
		MOQ:            1,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
	require.NoError(t, db.Create(row).Error)
	return row
}

func TestProductRepositoryFindBySupplierSKU(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewRepository(db)

	supplierID := uuid.New()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	want := createProduct(t, db, supplierID, "SKU-A", enums.ProductStatusActive, base)

	got, err := repo.FindBySupplierSKU(context.Background(), supplierID, "SKU-A")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)

	got, err = repo.FindBySupplierSKU(context.Background(), uuid.New(), "SKU-A")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepositoryListBySupplier(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewRepository(db)

	supplierID := uuid.New()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	createProduct(t, db, supplierID, "SKU-1", enums.ProductStatusDraft, base)
	active := createProduct(t, db, supplierID, "SKU-2", enums.ProductStatusActive, base.Add(time.Hour))
	createProduct(t, db, uuid.New(), "SKU-3", enums.ProductStatusActive, base)

	status := enums.ProductStatusActive
	rows, cursor, err := repo.ListBySupplier(context.Background(), ListProductsInput{
		SupplierID: supplierID,
		Status:     &status,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, cursor)
	assert.Equal(t, active.ID, rows[0].ID)

	rows, _, err = repo.ListBySupplier(context.Background(), ListProductsInput{SupplierID: supplierID})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestProductRepositoryUpdate(t *testing.T) {
	db := setupProductTestDB(t)
	repo := NewRepository(db)

	supplierID := uuid.New()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	row := createProduct(t, db, supplierID, "SKU-U", enums.ProductStatusDraft, base)

	require.NoError(t, repo.Update(context.Background(), row.ID, map[string]any{
		"status": enums.ProductStatusActive,
	}))

	reloaded, err := repo.FindByID(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ProductStatusActive, reloaded.Status)

	err = repo.Update(context.Background(), uuid.New(), map[string]any{"status": enums.ProductStatusActive})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
