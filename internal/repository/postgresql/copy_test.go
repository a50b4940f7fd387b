package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "github.com/barthig/Biblioteka-sub005/internal/db/mocks"
	"github.com/barthig/Biblioteka-sub005/internal/repository"
	"github.com/barthig/Biblioteka-sub005/internal/repository/postgresql"
)

func pgconnTag(s string) pgconn.CommandTag {
	return pgconn.CommandTag(s)
}

func TestCopyRepo_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewCopyRepo(mockDB)

		now := time.Now().UTC()
		testCopy := &repository.Copy{
			ID:        uuid.New(),
			ItemID:    "item-1",
			Status:    repository.CopyStatusAvailable,
			ShelfCode: "A-12",
			CreatedAt: now,
			UpdatedAt: now,
		}

		mockDB.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(testCopy.ID),
			gomock.Eq(testCopy.ItemID),
			gomock.Eq(testCopy.Status),
			gomock.Eq(testCopy.ShelfCode),
			gomock.Eq(testCopy.ConditionNote),
			gomock.Eq(testCopy.CreatedAt),
			gomock.Eq(testCopy.UpdatedAt),
		).Return(nil, nil)

		err := repo.Create(ctx, testCopy)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewCopyRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.Create(ctx, &repository.Copy{ID: uuid.New()})
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestCopyRepo_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("copy found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewCopyRepo(mockDB)

		testCopy := &repository.Copy{
			ID:     uuid.New(),
			ItemID: "item-1",
			Status: repository.CopyStatusAvailable,
		}

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(testCopy.ID)).
			DoAndReturn(func(_ context.Context, dest *repository.Copy, _ string, _ uuid.UUID) error {
				*dest = *testCopy
				return nil
			})

		copy, err := repo.GetByID(ctx, testCopy.ID)
		assert.NoError(t, err)
		assert.Equal(t, testCopy, copy)
	})

	t.Run("copy not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewCopyRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		copy, err := repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, copy)
	})
}

func TestCopyRepo_AcquireAvailableTx(t *testing.T) {
	ctx := context.Background()

	t.Run("oldest available copy is locked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewCopyRepo(mockDB)

		testCopy := &repository.Copy{
			ID:     uuid.New(),
			ItemID: "item-1",
			Status: repository.CopyStatusAvailable,
		}

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("item-1"), gomock.Eq(repository.CopyStatusAvailable)).
			DoAndReturn(func(_ context.Context, dest *repository.Copy, _ string, _ ...interface{}) error {
				*dest = *testCopy
				return nil
			})

		copy, err := repo.AcquireAvailableTx(ctx, mockTx, "item-1")
		assert.NoError(t, err)
		assert.Equal(t, testCopy, copy)
	})

	t.Run("every copy taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewCopyRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		copy, err := repo.AcquireAvailableTx(ctx, mockTx, "item-1")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, copy)
	})
}

func TestCopyRepo_UpdateStatusTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewCopyRepo(mockDB)

		copyID := uuid.New()
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq(copyID), gomock.Eq(repository.CopyStatusHeld), gomock.Any()).
			Return(pgconnTag("UPDATE 1"), nil)

		err := repo.UpdateStatusTx(ctx, mockTx, copyID, repository.CopyStatusHeld)
		assert.NoError(t, err)
	})

	t.Run("missing row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewCopyRepo(mockDB)

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconnTag("UPDATE 0"), nil)

		err := repo.UpdateStatusTx(ctx, mockTx, uuid.New(), repository.CopyStatusAvailable)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}
