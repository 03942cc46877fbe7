package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/odhiambo-ed/ReUbuntu/models"
	"github.com/odhiambo-ed/ReUbuntu/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestFindByID_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormUploadRepository(gormDB)

	now := time.Now()
	path := "user-1/9.csv"
	rows := sqlmock.NewRows([]string{"id", "user_id", "filename", "file_path", "status", "total_rows", "success_count", "error_count", "created_at", "updated_at"}).
		AddRow(int64(9), "user-1", "inventory.csv", path, models.UploadStatusPending, 0, 0, 0, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "uploads"`)).
		WithArgs(int64(9)).
		WillReturnRows(rows)

	upload, err := repo.FindByID(context.Background(), 9)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", upload.UserID)
	assert.Equal(t, path, *upload.FilePath)
	assert.Equal(t, models.UploadStatusPending, upload.Status)
}

func TestFindByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormUploadRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "uploads"`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	upload, err := repo.FindByID(context.Background(), 404)
	assert.Error(t, err)
	assert.Nil(t, upload)
}

func TestMarkProcessing_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormUploadRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "uploads" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkProcessing(context.Background(), 9, time.Now().UTC())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetTotalRows_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormUploadRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "uploads" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetTotalRows(context.Background(), 9, 42)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalize_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormUploadRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "uploads" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Finalize(context.Background(), 9, models.UploadStatusCompleted, 40, 2, time.Now().UTC())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalize_DBError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormUploadRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "uploads" SET`)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Finalize(context.Background(), 9, models.UploadStatusFailed, 0, 5, time.Now().UTC())
	assert.Error(t, err)
}

func TestInsertErrors_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormUploadRepository(gormDB)

	records := []models.UploadError{
		{UploadID: 9, RowNumber: 2, FieldName: "merchant_id", ErrorType: models.ErrorTypeMissingRequired, ErrorMessage: "Merchant ID is required", RawData: models.JSONMap{"sku": "S1"}},
		{UploadID: 9, RowNumber: 3, FieldName: "condition", ErrorType: models.ErrorTypeInvalidValue, ErrorMessage: "Condition must be one of: new, like_new, good, fair", RawData: models.JSONMap{"condition": "mint"}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "upload_errors"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))
	mock.ExpectCommit()

	err := repo.InsertErrors(context.Background(), records)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertErrors_EmptySliceIsNoOp(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormUploadRepository(gormDB)

	err := repo.InsertErrors(context.Background(), nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListErrors_Paginated(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormUploadRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "upload_errors"`)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows([]string{"id", "upload_id", "row_number", "field_name", "error_type", "error_message", "raw_data", "created_at"}).
		AddRow(int64(1), int64(9), 2, "sku", models.ErrorTypeMissingRequired, "SKU is required", []byte(`{"sku":""}`), now).
		AddRow(int64(2), int64(9), 5, "quantity", models.ErrorTypeInvalidFormat, "Quantity must be a positive integer", []byte(`{"quantity":"zero"}`), now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "upload_errors"`)).
		WillReturnRows(rows)

	records, total, err := repo.ListErrors(context.Background(), 9, 1, 50)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, records, 2)
	assert.Equal(t, "sku", records[0].FieldName)
	assert.Equal(t, "", records[0].RawData["sku"])
	assert.Equal(t, 5, records[1].RowNumber)
}
