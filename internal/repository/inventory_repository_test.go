package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weeraman/plantation-erp/internal/domain"
	customError "github.com/weeraman/plantation-erp/pkg/errors"
)

func TestApplyMovement_OutReducesQuantity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	itemID := uuid.New()
	movement := &domain.StockMovement{
		ID:        uuid.New(),
		ItemID:    itemID,
		Type:      domain.MovementTypeOut,
		Quantity:  decimal.NewFromInt(30),
		Reference: "INV250012",
		CreatedAt: time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, product_name, quantity FROM inventory (.+) FOR UPDATE`).
		WithArgs(itemID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_name", "quantity"}).
			AddRow(itemID, "Crepe Rubber", "100"))
	mock.ExpectExec(`UPDATE inventory`).
		WithArgs(itemID, decimal.NewFromInt(70), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO stock_movements`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ApplyMovement(context.Background(), movement)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMovement_RejectsOverdraw(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	itemID := uuid.New()
	movement := &domain.StockMovement{
		ID:       uuid.New(),
		ItemID:   itemID,
		Type:     domain.MovementTypeOut,
		Quantity: decimal.NewFromInt(50),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, product_name, quantity FROM inventory (.+) FOR UPDATE`).
		WithArgs(itemID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_name", "quantity"}).
			AddRow(itemID, "Crepe Rubber", "40"))
	mock.ExpectRollback()

	err := repo.ApplyMovement(context.Background(), movement)

	assert.ErrorIs(t, err, customError.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyMovement_UnknownItem(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	itemID := uuid.New()
	movement := &domain.StockMovement{
		ID:       uuid.New(),
		ItemID:   itemID,
		Type:     domain.MovementTypeIn,
		Quantity: decimal.NewFromInt(10),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, product_name, quantity FROM inventory (.+) FOR UPDATE`).
		WithArgs(itemID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_name", "quantity"}))
	mock.ExpectRollback()

	err := repo.ApplyMovement(context.Background(), movement)

	assert.ErrorIs(t, err, customError.ErrItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
