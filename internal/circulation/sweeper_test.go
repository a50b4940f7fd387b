package circulation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/barthig/Biblioteka-sub005/internal/circulation"
	"github.com/barthig/Biblioteka-sub005/internal/db"
	"github.com/barthig/Biblioteka-sub005/internal/notify"
	"github.com/barthig/Biblioteka-sub005/internal/repository"
)

func newSweeper(t *testing.T, m *engineMocks) *circulation.Sweeper {
	t.Helper()
	queue := circulation.NewQueue(m.db, m.reservations, circulation.NewLedger(m.copies), m.events, testConfig(), zap.NewNop())
	return circulation.NewSweeper(m.db, m.reservations, m.copies, queue, m.events, m.cache, testConfig(), zap.NewNop())
}

func TestSweepExpiresLapsedPreparedHold(t *testing.T) {
	ctx := context.Background()
	m, _ := newEngine(t)
	sweeper := newSweeper(t, m)

	resID := uuid.New()
	copyID := uuid.New()
	lapsed := &repository.Reservation{
		ID:        resID,
		ItemID:    "item-1",
		PatronID:  "p1",
		Status:    repository.ReservationStatusPrepared,
		CopyID:    &copyID,
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}

	m.reservations.EXPECT().FindLapsed(gomock.Any(), repository.ReservationStatusPrepared, gomock.Any(), 100).
		Return([]*repository.Reservation{lapsed}, nil)
	m.reservations.EXPECT().FindLapsed(gomock.Any(), repository.ReservationStatusActive, gomock.Any(), 100).
		Return(nil, nil)

	m.reservations.EXPECT().GetByIDTx(gomock.Any(), m.tx, resID).Return(lapsed, nil)
	m.copies.EXPECT().GetByIDTx(gomock.Any(), m.tx, copyID).
		Return(&repository.Copy{ID: copyID, ItemID: "item-1", Status: repository.CopyStatusHeld}, nil)
	m.copies.EXPECT().UpdateStatusTx(gomock.Any(), m.tx, copyID, repository.CopyStatusAvailable).Return(nil)
	m.reservations.EXPECT().UpdateTx(gomock.Any(), m.tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ db.Tx, res *repository.Reservation) error {
			assert.Equal(t, repository.ReservationStatusExpired, res.Status)
			require.NotNil(t, res.ResolvedAt)
			return nil
		})
	m.events.EXPECT().EmitTx(gomock.Any(), m.tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ db.Tx, event notify.Event) error {
			assert.Equal(t, notify.EventHoldExpired, event.Type)
			return nil
		})

	// freed copy goes back through allocation
	m.reservations.EXPECT().HeadOfQueueTx(gomock.Any(), m.tx, "item-1").
		Return(nil, repository.ErrObjectNotFound)

	sweeper.Sweep(ctx)
}

func TestSweepLeavesReleasedCopyUntouched(t *testing.T) {
	ctx := context.Background()
	m, _ := newEngine(t)
	sweeper := newSweeper(t, m)

	resID := uuid.New()
	copyID := uuid.New()
	lapsed := &repository.Reservation{
		ID:        resID,
		ItemID:    "item-1",
		PatronID:  "p1",
		Status:    repository.ReservationStatusPrepared,
		CopyID:    &copyID,
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}

	m.reservations.EXPECT().FindLapsed(gomock.Any(), repository.ReservationStatusPrepared, gomock.Any(), 100).
		Return([]*repository.Reservation{lapsed}, nil)
	m.reservations.EXPECT().FindLapsed(gomock.Any(), repository.ReservationStatusActive, gomock.Any(), 100).
		Return(nil, nil)

	m.reservations.EXPECT().GetByIDTx(gomock.Any(), m.tx, resID).Return(lapsed, nil)
	// copy already back in circulation; no status write may follow
	m.copies.EXPECT().GetByIDTx(gomock.Any(), m.tx, copyID).
		Return(&repository.Copy{ID: copyID, ItemID: "item-1", Status: repository.CopyStatusAvailable}, nil)
	m.reservations.EXPECT().UpdateTx(gomock.Any(), m.tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ db.Tx, res *repository.Reservation) error {
			assert.Equal(t, repository.ReservationStatusExpired, res.Status)
			return nil
		})
	m.events.EXPECT().EmitTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)
	m.reservations.EXPECT().HeadOfQueueTx(gomock.Any(), m.tx, "item-1").
		Return(nil, repository.ErrObjectNotFound)

	sweeper.Sweep(ctx)
}

func TestSweepSkipsHoldResolvedMeanwhile(t *testing.T) {
	ctx := context.Background()
	m, _ := newEngine(t)
	sweeper := newSweeper(t, m)

	resID := uuid.New()
	listed := &repository.Reservation{
		ID:        resID,
		ItemID:    "item-1",
		Status:    repository.ReservationStatusPrepared,
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}

	m.reservations.EXPECT().FindLapsed(gomock.Any(), repository.ReservationStatusPrepared, gomock.Any(), 100).
		Return([]*repository.Reservation{listed}, nil)
	m.reservations.EXPECT().FindLapsed(gomock.Any(), repository.ReservationStatusActive, gomock.Any(), 100).
		Return(nil, nil)

	// picked up between the listing and the lock
	m.reservations.EXPECT().GetByIDTx(gomock.Any(), m.tx, resID).
		Return(&repository.Reservation{ID: resID, ItemID: "item-1", Status: repository.ReservationStatusFulfilled}, nil)

	sweeper.Sweep(ctx)
}

func TestSweepExpiresLapsedActiveHold(t *testing.T) {
	ctx := context.Background()
	m, _ := newEngine(t)
	sweeper := newSweeper(t, m)

	resID := uuid.New()
	lapsed := &repository.Reservation{
		ID:        resID,
		ItemID:    "item-1",
		PatronID:  "p1",
		Status:    repository.ReservationStatusActive,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}

	m.reservations.EXPECT().FindLapsed(gomock.Any(), repository.ReservationStatusPrepared, gomock.Any(), 100).
		Return(nil, nil)
	m.reservations.EXPECT().FindLapsed(gomock.Any(), repository.ReservationStatusActive, gomock.Any(), 100).
		Return([]*repository.Reservation{lapsed}, nil)

	m.reservations.EXPECT().GetByIDTx(gomock.Any(), m.tx, resID).Return(lapsed, nil)
	m.reservations.EXPECT().UpdateTx(gomock.Any(), m.tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ db.Tx, res *repository.Reservation) error {
			assert.Equal(t, repository.ReservationStatusExpired, res.Status)
			return nil
		})
	m.events.EXPECT().EmitTx(gomock.Any(), m.tx, gomock.Any()).Return(nil)

	// no copy was earmarked, so no allocation follows
	sweeper.Sweep(ctx)
}

func TestSweepEmitsLoanReminders(t *testing.T) {
	ctx := context.Background()
	m, _ := newEngine(t)
	sweeper := newSweeper(t, m)

	m.reservations.EXPECT().FindLapsed(gomock.Any(), gomock.Any(), gomock.Any(), 100).
		Return(nil, nil).Times(2)

	dueSoon := &repository.Loan{
		ID:       uuid.New(),
		CopyID:   uuid.New(),
		ItemID:   "item-1",
		PatronID: "p1",
		DueAt:    time.Now().UTC().Add(24 * time.Hour),
	}
	overdue := &repository.Loan{
		ID:       uuid.New(),
		CopyID:   uuid.New(),
		ItemID:   "item-2",
		PatronID: "p2",
		DueAt:    time.Now().UTC().Add(-24 * time.Hour),
	}
	m.cache.Set(dueSoon)
	m.cache.Set(overdue)

	seen := make(map[notify.EventType]string)
	m.events.EXPECT().EmitTx(gomock.Any(), m.tx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ db.Tx, event notify.Event) error {
			seen[event.Type] = event.LoanID
			return nil
		}).Times(2)

	sweeper.Sweep(ctx)

	assert.Equal(t, dueSoon.ID.String(), seen[notify.EventLoanDueSoon])
	assert.Equal(t, overdue.ID.String(), seen[notify.EventLoanOverdue])
}
