package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/odhiambo-ed/ReUbuntu/models"
	"github.com/odhiambo-ed/ReUbuntu/repository"
)

func sampleItem(merchantID, sku string) models.InventoryItem {
	uploadID := int64(9)
	return models.InventoryItem{
		UserID:        "user-1",
		UploadID:      &uploadID,
		MerchantID:    merchantID,
		SKU:           sku,
		Title:         "Denim Jacket",
		Category:      "Outerwear",
		Condition:     "good",
		OriginalPrice: 450.00,
		Currency:      "ZAR",
		Quantity:      1,
		Status:        models.ItemStatusPending,
	}
}

func TestUpsertBatch_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormInventoryRepository(gormDB)

	items := []models.InventoryItem{sampleItem("M1", "SKU-1"), sampleItem("M1", "SKU-2")}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "inventory_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))
	mock.ExpectCommit()

	written, err := repo.UpsertBatch(context.Background(), items)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), written)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertBatch_ConflictClause(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormInventoryRepository(gormDB)

	// A collision on (user_id, merchant_id, sku) must update, not skip.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT ("user_id","merchant_id","sku") DO UPDATE SET`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	written, err := repo.UpsertBatch(context.Background(), []models.InventoryItem{sampleItem("M1", "SKU-1")})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), written)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertBatch_EmptySliceIsNoOp(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormInventoryRepository(gormDB)

	written, err := repo.UpsertBatch(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), written)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertBatch_DBError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormInventoryRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "inventory_items"`)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	written, err := repo.UpsertBatch(context.Background(), []models.InventoryItem{sampleItem("M1", "SKU-1")})
	assert.Error(t, err)
	assert.Equal(t, int64(0), written)
}

func TestFindByUser_Paginated(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormInventoryRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "inventory_items"`)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "user_id", "merchant_id", "sku", "title", "category", "condition", "original_price", "currency", "quantity", "status", "created_at", "updated_at"}).
		AddRow(int64(1), "user-1", "M1", "SKU-1", "Denim Jacket", "Outerwear", "good", 450.00, "ZAR", 1, models.ItemStatusPending, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "inventory_items"`)).
		WillReturnRows(rows)

	items, total, err := repo.FindByUser(context.Background(), "user-1", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
	assert.Equal(t, "SKU-1", items[0].SKU)
}
