package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a gorm DB backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
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

	return gormDB, mock, mockDB
}

func TestGormTransferRepository_FindByID(t *testing.T) {
	t.Run("finds existing transfer with lines", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTransferRepository(gormDB)

		transferID := uuid.New()

		transferRows := sqlmock.NewRows([]string{"id", "version", "reference", "kind", "state", "source_location_id", "destination_location_id"}).
			AddRow(transferID, 1, "OUT00001", "OUTGOING", "DRAFT", uuid.New(), uuid.New())
		mock.ExpectQuery(`SELECT \* FROM "transfer_documents" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(transferID, 1).
			WillReturnRows(transferRows)

		lineRows := sqlmock.NewRows([]string{"id", "transfer_id", "product_name", "quantity", "procure_method"}).
			AddRow(uuid.New(), transferID, "Stroller", "2", "MAKE_TO_STOCK")
		mock.ExpectQuery(`SELECT \* FROM "transfer_lines" WHERE "transfer_lines"\."transfer_id" = \$1`).
			WithArgs(transferID).
			WillReturnRows(lineRows)

		transfer, err := repo.FindByID(context.Background(), transferID)

		require.NoError(t, err)
		require.NotNil(t, transfer)
		assert.Equal(t, "OUT00001", transfer.Reference)
		assert.Len(t, transfer.Lines, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing transfer", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTransferRepository(gormDB)

		transferID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "transfer_documents" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(transferID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		transfer, err := repo.FindByID(context.Background(), transferID)

		assert.Nil(t, transfer)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTransferRepository_FindDoneReceiptsByPurchaseOrder(t *testing.T) {
	t.Run("filters by kind, state and purchase order", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTransferRepository(gormDB)

		orderID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "reference", "kind", "state", "partner_reference"}).
			AddRow(uuid.New(), "IN00001", "INCOMING", "DONE", "SUP-REF-1").
			AddRow(uuid.New(), "IN00002", "INCOMING", "DONE", "SUP-REF-2")

		mock.ExpectQuery(`SELECT \* FROM "transfer_documents" WHERE kind = \$1 AND state = \$2 AND purchase_order_id = \$3 ORDER BY created_at ASC, id ASC`).
			WithArgs(stock.TransferKindIncoming, stock.TransferStateDone, orderID).
			WillReturnRows(rows)

		receipts, err := repo.FindDoneReceiptsByPurchaseOrder(context.Background(), orderID)

		require.NoError(t, err)
		require.Len(t, receipts, 2)
		assert.Equal(t, "SUP-REF-1", receipts[0].PartnerReference)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTransferRepository_SaveWithLock(t *testing.T) {
	t.Run("returns conflict when version moved on", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTransferRepository(gormDB)

		transfer, err := stock.NewReceipt("IN00001", uuid.New(), uuid.New(), nil)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "transfer_documents" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), transfer, 1)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("succeeds when version matches", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTransferRepository(gormDB)

		transfer, err := stock.NewReceipt("IN00001", uuid.New(), uuid.New(), nil)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "transfer_documents" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), transfer, 1)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormTransferRepository_GenerateReference(t *testing.T) {
	t.Run("starts at 1 when no documents exist", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTransferRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "transfer_documents" WHERE kind = \$1 AND reference LIKE \$2 ORDER BY reference DESC,.* LIMIT .*`).
			WithArgs(stock.TransferKindOutgoing, "OUT%", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		ref, err := repo.GenerateReference(context.Background(), stock.TransferKindOutgoing)

		require.NoError(t, err)
		assert.Equal(t, "OUT00001", ref)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments the highest existing reference", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormTransferRepository(gormDB)

		rows := sqlmock.NewRows([]string{"id", "reference", "kind", "state"}).
			AddRow(uuid.New(), "INT00041", "INTERNAL", "DONE")
		mock.ExpectQuery(`SELECT \* FROM "transfer_documents" WHERE kind = \$1 AND reference LIKE \$2 ORDER BY reference DESC,.* LIMIT .*`).
			WithArgs(stock.TransferKindInternal, "INT%", 1).
			WillReturnRows(rows)

		ref, err := repo.GenerateReference(context.Background(), stock.TransferKindInternal)

		require.NoError(t, err)
		assert.Equal(t, "INT00042", ref)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
