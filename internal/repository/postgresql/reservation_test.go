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

func TestReservationRepo_HeadOfQueueTx(t *testing.T) {
	ctx := context.Background()

	t.Run("head found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mockDB)

		head := &repository.Reservation{
			ID:       uuid.New(),
			ItemID:   "item-1",
			PatronID: "p1",
			Status:   repository.ReservationStatusActive,
		}

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("item-1"), gomock.Eq(repository.ReservationStatusActive)).
			DoAndReturn(func(_ context.Context, dest *repository.Reservation, _ string, _ ...interface{}) error {
				*dest = *head
				return nil
			})

		res, err := repo.HeadOfQueueTx(ctx, mockTx, "item-1")
		assert.NoError(t, err)
		assert.Equal(t, head, res)
	})

	t.Run("empty queue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		res, err := repo.HeadOfQueueTx(ctx, mockTx, "item-1")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, res)
	})
}

func TestReservationRepo_UpdateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success refreshes updated_at", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mockDB)

		res := &repository.Reservation{
			ID:     uuid.New(),
			Status: repository.ReservationStatusPrepared,
		}
		before := res.UpdatedAt

		mockTx.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(res.ID),
			gomock.Eq(res.Status),
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
		).Return(pgconnTag("UPDATE 1"), nil)

		err := repo.UpdateTx(ctx, mockTx, res)
		assert.NoError(t, err)
		assert.True(t, res.UpdatedAt.After(before))
	})

	t.Run("missing row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mockDB)

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconnTag("UPDATE 0"), nil)

		err := repo.UpdateTx(ctx, mockTx, &repository.Reservation{ID: uuid.New()})
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mockDB)

		expectedErr := errors.New("database error")
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.UpdateTx(ctx, mockTx, &repository.Reservation{ID: uuid.New()})
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestReservationRepo_FindLapsed(t *testing.T) {
	ctx := context.Background()

	t.Run("with limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewReservationRepo(mockDB)

		now := time.Now().UTC()
		lapsed := []*repository.Reservation{
			{ID: uuid.New(), Status: repository.ReservationStatusPrepared, ExpiresAt: now.Add(-time.Hour)},
		}

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(repository.ReservationStatusPrepared), gomock.Eq(now), gomock.Eq(50)).
			DoAndReturn(func(_ context.Context, dest *[]*repository.Reservation, _ string, _ ...interface{}) error {
				*dest = lapsed
				return nil
			})

		got, err := repo.FindLapsed(ctx, repository.ReservationStatusPrepared, now, 50)
		assert.NoError(t, err)
		assert.Equal(t, lapsed, got)
	})

	t.Run("without limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewReservationRepo(mockDB)

		now := time.Now().UTC()
		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(repository.ReservationStatusActive), gomock.Eq(now)).
			Return(nil)

		_, err := repo.FindLapsed(ctx, repository.ReservationStatusActive, now, 0)
		assert.NoError(t, err)
	})
}

func TestReservationRepo_CreateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns an id when missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mockDB)

		res := &repository.Reservation{
			ItemID:   "item-1",
			PatronID: "p1",
			Status:   repository.ReservationStatusActive,
		}

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("item-1"), gomock.Eq("p1"), gomock.Eq(repository.ReservationStatusActive), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		err := repo.CreateTx(ctx, mockTx, res)
		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, res.ID)
	})

	t.Run("open-pair index violation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mockDB)

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &pgconn.PgError{Code: "23505", ConstraintName: "idx_reservations_open_pair"})

		err := repo.CreateTx(ctx, mockTx, &repository.Reservation{
			ItemID:   "item-1",
			PatronID: "p1",
			Status:   repository.ReservationStatusActive,
		})
		assert.ErrorIs(t, err, repository.ErrUniqueViolation)
	})

	t.Run("other database error passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewReservationRepo(mockDB)

		expectedErr := errors.New("database error")
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.CreateTx(ctx, mockTx, &repository.Reservation{ItemID: "item-1", PatronID: "p1"})
		assert.ErrorIs(t, err, expectedErr)
		assert.NotErrorIs(t, err, repository.ErrUniqueViolation)
	})
}
