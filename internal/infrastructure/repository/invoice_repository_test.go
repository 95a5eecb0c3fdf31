package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alnasr/invoicing-api/internal/domain/entity"
	domainRepo "github.com/alnasr/invoicing-api/internal/domain/repository"
	"github.com/alnasr/invoicing-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockInvoiceRepository(t *testing.T) (domainRepo.InvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewInvoiceRepository(gormDB), mock, mockDB
}

func TestInvoiceRepository_ExistsByNumber(t *testing.T) {
	t.Run("reports an existing number", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices"`).
			WithArgs("INV-20250531-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByNumber(context.Background(), "INV-20250531-1")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports a free number", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices"`).
			WithArgs("INV-20250531-2").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByNumber(context.Background(), "INV-20250531-2")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInvoiceRepository_CreateWithItems_DuplicateNumber(t *testing.T) {
	repo, mock, mockDB := newMockInvoiceRepository(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "invoices"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	invoice := &entity.Invoice{
		UserID:     uuid.New(),
		Number:     "INV-20250531-1",
		ExternalID: uuid.New(),
	}

	err := repo.CreateWithItems(context.Background(), invoice)

	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepository_GetByIDForUser_NotFound(t *testing.T) {
	repo, mock, mockDB := newMockInvoiceRepository(t)
	defer mockDB.Close()

	id := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE`).
		WillReturnError(gorm.ErrRecordNotFound)

	invoice, err := repo.GetByIDForUser(context.Background(), id, userID)

	assert.NoError(t, err)
	assert.Nil(t, invoice)
	assert.NoError(t, mock.ExpectationsWereMet())
}
