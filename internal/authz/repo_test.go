package authz

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sellerbridge/sellerbridge-backend/pkg/db/models"
	"github.com/sellerbridge/sellerbridge-backend/pkg/enums"
	"github.com/sellerbridge/sellerbridge-backend/pkg/pagination"
)

func setupAuthzTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	sellers := `
CREATE TABLE IF NOT EXISTS sellers (
  id TEXT PRIMARY KEY,
  company_name TEXT NOT NULL,
  dba_name TEXT,
  email TEXT,
  phone TEXT,
  max_approved_override INTEGER,
  is_active INTEGER NOT NULL DEFAULT 1,
  owner TEXT NOT NULL,
  last_active_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	authorizationRequests := `
CREATE TABLE IF NOT EXISTS authorization_requests (
  id TEXT PRIMARY KEY,
  seller_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  supplier_id TEXT NOT NULL,
  status TEXT NOT NULL,
  message TEXT,
  metadata BLOB,
  requested_at DATETIME NOT NULL,
  decided_at DATETIME,
  decided_by TEXT,
  decision_reason TEXT,
  cancelled_at DATETIME,
  revoked_at DATETIME,
  revoked_by TEXT,
  revocation_reason TEXT,
  cooldown_until DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(sellers).Error)
	require.NoError(t, db.Exec(authorizationRequests).Error)
	return db
}

func createAuthorization(t *testing.T, db *gorm.DB, sellerID, productID, supplierID uuid.UUID, status enums.AuthorizationStatus, created time.Time) *models.AuthorizationRequest {
	t.Helper()

	row := &models.AuthorizationRequest{
		ID:          uuid.New(),
		SellerID:    sellerID,
		ProductID:   productID,
		SupplierID:  supplierID,
		Status:      status,
		RequestedAt: created,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	require.NoError(t, db.Create(row).Error)
	return row
}

func TestRepositoryFindActiveByPair(t *testing.T) {
	db := setupAuthzTestDB(t)
	repo := NewRepository(db)

	sellerID := uuid.New()
	productID := uuid.New()
	supplierID := uuid.New()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	createAuthorization(t, db, sellerID, productID, supplierID, enums.AuthorizationStatusRejected, base)
	want := createAuthorization(t, db, sellerID, productID, supplierID, enums.AuthorizationStatusRequested, base.Add(time.Hour))

	got, err := repo.FindActiveByPair(context.Background(), sellerID, productID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)

	got, err = repo.FindActiveByPair(context.Background(), sellerID, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepositoryFindLatestTerminalByPair(t *testing.T) {
	db := setupAuthzTestDB(t)
	repo := NewRepository(db)

	sellerID := uuid.New()
	productID := uuid.New()
	supplierID := uuid.New()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	createAuthorization(t, db, sellerID, productID, supplierID, enums.AuthorizationStatusCancelled, base)
	want := createAuthorization(t, db, sellerID, productID, supplierID, enums.AuthorizationStatusRejected, base.Add(48*time.Hour))

	got, err := repo.FindLatestTerminalByPair(context.Background(), sellerID, productID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
}

func TestRepositoryCountApproved(t *testing.T) {
	db := setupAuthzTestDB(t)
	repo := NewRepository(db)

	sellerID := uuid.New()
	supplierID := uuid.New()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		createAuthorization(t, db, sellerID, uuid.New(), supplierID, enums.AuthorizationStatusApproved, base.Add(time.Duration(i)*time.Hour))
	}
	createAuthorization(t, db, sellerID, uuid.New(), supplierID, enums.AuthorizationStatusRequested, base)
	createAuthorization(t, db, sellerID, uuid.New(), supplierID, enums.AuthorizationStatusRevoked, base)
	createAuthorization(t, db, uuid.New(), uuid.New(), supplierID, enums.AuthorizationStatusApproved, base)

	count, err := repo.CountApproved(context.Background(), sellerID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepositoryUpdate(t *testing.T) {
	db := setupAuthzTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	row := createAuthorization(t, db, uuid.New(), uuid.New(), uuid.New(), enums.AuthorizationStatusRequested, base)

	decidedAt := base.Add(time.Hour)
	decidedBy := uuid.New()
	err := repo.Update(context.Background(), row.ID, map[string]any{
		"status":     enums.AuthorizationStatusApproved,
		"decided_at": decidedAt,
		"decided_by": decidedBy,
	})
	require.NoError(t, err)

	reloaded, err := repo.FindByID(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AuthorizationStatusApproved, reloaded.Status)
	require.NotNil(t, reloaded.DecidedAt)
	require.NotNil(t, reloaded.DecidedBy)
	assert.Equal(t, decidedBy, *reloaded.DecidedBy)

	err = repo.Update(context.Background(), uuid.New(), map[string]any{"status": enums.AuthorizationStatusApproved})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListBySellerPagination(t *testing.T) {
	db := setupAuthzTestDB(t)
	repo := NewRepository(db)

	sellerID := uuid.New()
	supplierID := uuid.New()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		row := createAuthorization(t, db, sellerID, uuid.New(), supplierID, enums.AuthorizationStatusRequested, base.Add(time.Duration(i)*time.Hour))
		ids = append(ids, row.ID)
	}

	rows, cursor, err := repo.ListBySeller(context.Background(), sellerID, pagination.Params{Limit: 2}, SellerViewFilters{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotEmpty(t, cursor)
	assert.Equal(t, ids[2], rows[0].ID)
	assert.Equal(t, ids[1], rows[1].ID)

	rows, cursor, err = repo.ListBySeller(context.Background(), sellerID, pagination.Params{Limit: 2, Cursor: cursor}, SellerViewFilters{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, cursor)
	assert.Equal(t, ids[0], rows[0].ID)
}

func TestRepositoryListBySellerStatusFilter(t *testing.T) {
	db := setupAuthzTestDB(t)
	repo := NewRepository(db)

	sellerID := uuid.New()
	supplierID := uuid.New()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	createAuthorization(t, db, sellerID, uuid.New(), supplierID, enums.AuthorizationStatusRequested, base)
	approved := createAuthorization(t, db, sellerID, uuid.New(), supplierID, enums.AuthorizationStatusApproved, base.Add(time.Hour))

	status := enums.AuthorizationStatusApproved
	rows, _, err := repo.ListBySeller(context.Background(), sellerID, pagination.Params{}, SellerViewFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, approved.ID, rows[0].ID)
}

func TestRepositoryListBySupplierFilters(t *testing.T) {
	db := setupAuthzTestDB(t)
	repo := NewRepository(db)

	supplierID := uuid.New()
	productID := uuid.New()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	match := createAuthorization(t, db, uuid.New(), productID, supplierID, enums.AuthorizationStatusRequested, base)
	createAuthorization(t, db, uuid.New(), uuid.New(), supplierID, enums.AuthorizationStatusRequested, base.Add(time.Hour))
	createAuthorization(t, db, uuid.New(), productID, uuid.New(), enums.AuthorizationStatusRequested, base)

	rows, _, err := repo.ListBySupplier(context.Background(), supplierID, pagination.Params{}, SupplierInboxFilters{ProductID: &productID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, match.ID, rows[0].ID)
}

func TestRepositoryPersistsMetadata(t *testing.T) {
	db := setupAuthzTestDB(t)
	repo := NewRepository(db)

	metadata := []byte(`{"campaign":"spring-launch","priority":7}`)
	row := &models.AuthorizationRequest{
		ID:          uuid.New(),
		SellerID:    uuid.New(),
		ProductID:   uuid.New(),
		SupplierID:  uuid.New(),
		Status:      enums.AuthorizationStatusRequested,
		Metadata:    metadata,
		RequestedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := repo.Create(context.Background(), row)
	require.NoError(t, err)

	reloaded, err := repo.FindByID(context.Background(), row.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(metadata), string(reloaded.Metadata))
}

// sqlRecorder captures the SQL gorm builds so generated statements can be
// asserted without a live postgres.
type sqlRecorder struct {
	statements []string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }

func (r *sqlRecorder) Info(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Warn(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	stmt, _ := fc()
	r.statements = append(r.statements, stmt)
}

func (r *sqlRecorder) last(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, r.statements)
	return r.statements[len(r.statements)-1]
}

func setupDryRunPostgres(t *testing.T, rec *sqlRecorder) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{DriverName: "pgx", DSN: "sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	require.NoError(t, err)
	return db
}

func TestRepositoryFindByIDForUpdateLocksRow(t *testing.T) {
	rec := &sqlRecorder{}
	repo := NewRepository(setupDryRunPostgres(t, rec))

	_, err := repo.FindByIDForUpdate(context.Background(), uuid.New())
	require.NoError(t, err)
	locked := rec.last(t)
	assert.Contains(t, locked, `"authorization_requests"`)
	assert.Contains(t, locked, "FOR UPDATE")

	// Plain reads must not take the lock.
	rec.statements = nil
	_, err = repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotContains(t, rec.last(t), "FOR UPDATE")
}

func TestSellerDirectoryFindByIDForUpdateLocksRow(t *testing.T) {
	rec := &sqlRecorder{}
	dir := NewSellerDirectory(setupDryRunPostgres(t, rec))

	_, err := dir.FindByIDForUpdate(context.Background(), uuid.New())
	require.NoError(t, err)
	locked := rec.last(t)
	assert.Contains(t, locked, `"sellers"`)
	assert.Contains(t, locked, "FOR UPDATE")

	rec.statements = nil
	_, err = dir.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotContains(t, rec.last(t), "FOR UPDATE")
}

func TestRepositoryFindByIDForUpdateReturnsRow(t *testing.T) {
	db := setupAuthzTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	row := createAuthorization(t, db, uuid.New(), uuid.New(), uuid.New(), enums.AuthorizationStatusRequested, base)

	got, err := repo.FindByIDForUpdate(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, row.ID, got.ID)

	_, err = repo.FindByIDForUpdate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
