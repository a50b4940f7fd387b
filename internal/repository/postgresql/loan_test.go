package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "github.com/barthig/Biblioteka-sub005/internal/db/mocks"
	"github.com/barthig/Biblioteka-sub005/internal/repository"
	"github.com/barthig/Biblioteka-sub005/internal/repository/postgresql"
)

func TestLoanRepo_CreateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewLoanRepo(mockDB)

		now := time.Now().UTC()
		loan := &repository.Loan{
			ID:         uuid.New(),
			CopyID:     uuid.New(),
			ItemID:     "item-1",
			PatronID:   "p1",
			BorrowedAt: now,
			DueAt:      now.Add(14 * 24 * time.Hour),
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		mockTx.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(loan.ID),
			gomock.Eq(loan.CopyID),
			gomock.Eq(loan.ItemID),
			gomock.Eq(loan.PatronID),
			gomock.Eq(loan.ReservationID),
			gomock.Eq(loan.BorrowedAt),
			gomock.Eq(loan.DueAt),
			gomock.Eq(loan.ReturnedAt),
			gomock.Eq(loan.Extensions),
			gomock.Eq(loan.CreatedAt),
			gomock.Eq(loan.UpdatedAt),
		).Return(nil, nil)

		err := repo.CreateTx(ctx, mockTx, loan)
		assert.NoError(t, err)
	})

	t.Run("assigns an id when missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewLoanRepo(mockDB)

		loan := &repository.Loan{CopyID: uuid.New(), ItemID: "item-1", PatronID: "p1"}
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		err := repo.CreateTx(ctx, mockTx, loan)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, loan.ID)
	})
}

func TestLoanRepo_GetActiveByCopyTx(t *testing.T) {
	ctx := context.Background()

	t.Run("open loan is locked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewLoanRepo(mockDB)

		copyID := uuid.New()
		open := &repository.Loan{
			ID:       uuid.New(),
			CopyID:   copyID,
			ItemID:   "item-1",
			PatronID: "p1",
		}

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(copyID)).
			DoAndReturn(func(_ context.Context, dest *repository.Loan, _ string, _ uuid.UUID) error {
				*dest = *open
				return nil
			})

		loan, err := repo.GetActiveByCopyTx(ctx, mockTx, copyID)
		assert.NoError(t, err)
		assert.Equal(t, open, loan)
	})

	t.Run("copy has no open loan", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewLoanRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		loan, err := repo.GetActiveByCopyTx(ctx, mockTx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, loan)
	})
}

func TestLoanRepo_UpdateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success refreshes updated_at", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewLoanRepo(mockDB)

		loan := &repository.Loan{ID: uuid.New(), Extensions: 1}
		before := loan.UpdatedAt

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq(loan.ID), gomock.Any(), gomock.Any(), gomock.Eq(1), gomock.Any()).
			Return(pgconnTag("UPDATE 1"), nil)

		err := repo.UpdateTx(ctx, mockTx, loan)
		assert.NoError(t, err)
		assert.True(t, loan.UpdatedAt.After(before))
	})

	t.Run("missing row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewLoanRepo(mockDB)

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconnTag("UPDATE 0"), nil)

		err := repo.UpdateTx(ctx, mockTx, &repository.Loan{ID: uuid.New()})
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewLoanRepo(mockDB)

		expectedErr := errors.New("database error")
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.UpdateTx(ctx, mockTx, &repository.Loan{ID: uuid.New()})
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestLoanRepo_GetByPatron(t *testing.T) {
	ctx := context.Background()

	t.Run("active only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewLoanRepo(mockDB)

		active := []*repository.Loan{{ID: uuid.New(), PatronID: "p1"}}
		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("p1")).
			DoAndReturn(func(_ context.Context, dest *[]*repository.Loan, query string, _ string) error {
				assert.Contains(t, query, "returned_at IS NULL")
				*dest = active
				return nil
			})

		loans, err := repo.GetByPatron(ctx, "p1", 0, true)
		assert.NoError(t, err)
		assert.Equal(t, active, loans)
	})

	t.Run("with limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewLoanRepo(mockDB)

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("p1"), gomock.Eq(10)).
			Return(nil)

		_, err := repo.GetByPatron(ctx, "p1", 10, false)
		assert.NoError(t, err)
	})
}
