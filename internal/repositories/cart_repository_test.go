package repository_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/arnavkapoor/storefront-platform/internal/models"
	repository "github.com/arnavkapoor/storefront-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewCartRepo(db)
	ctx := context.Background()

	t.Run("GetCartByUserID_Success", func(t *testing.T) {
		userID := uuid.New()
		productID := uuid.New()
		now := time.Now()

		itemsJSON, err := json.Marshal([]models.CartItem{{ProductID: productID, Quantity: 3}})
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT user_id, items, updated_at`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "items", "updated_at"}).
				AddRow(userID, itemsJSON, now))

		cart, err := repo.GetCartByUserID(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, userID, cart.UserID)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, productID, cart.Items[0].ProductID)
		assert.Equal(t, 3, cart.Items[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetCartByUserID_NotFound", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectQuery(`SELECT user_id, items, updated_at`).
			WithArgs(userID).
			WillReturnError(sql.ErrNoRows)

		cart, err := repo.GetCartByUserID(ctx, userID)

		require.Error(t, err)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, cart)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetCartByUserID_CorruptItems", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectQuery(`SELECT user_id, items, updated_at`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "items", "updated_at"}).
				AddRow(userID, []byte(`{not json`), time.Now()))

		cart, err := repo.GetCartByUserID(ctx, userID)

		require.Error(t, err)
		assert.Nil(t, cart)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpsertCart_InsertsOrReplacesDocument", func(t *testing.T) {
		userID := uuid.New()
		cart := &models.Cart{
			UserID: userID,
			Items: []models.CartItem{
				{ProductID: uuid.New(), Quantity: 1},
				{ProductID: uuid.New(), Quantity: 2},
			},
			UpdatedAt: time.Now(),
		}

		expectedJSON, err := json.Marshal(cart.Items)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO carts`).
			WithArgs(userID, expectedJSON, cart.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.UpsertCart(ctx, cart)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpsertCart_StampsZeroUpdatedAt", func(t *testing.T) {
		userID := uuid.New()
		cart := &models.Cart{UserID: userID, Items: []models.CartItem{}}

		mock.ExpectExec(`INSERT INTO carts`).
			WithArgs(userID, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpsertCart(ctx, cart)

		require.NoError(t, err)
		assert.False(t, cart.UpdatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteCart_Success", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectExec(`DELETE FROM carts`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteCart(ctx, userID)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteCart_NoRowsIsStillSuccess", func(t *testing.T) {
		userID := uuid.New()

		mock.ExpectExec(`DELETE FROM carts`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteCart(ctx, userID)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
