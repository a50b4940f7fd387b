package circulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/barthig/Biblioteka-sub005/internal/config"
	"github.com/barthig/Biblioteka-sub005/internal/db"
	"github.com/barthig/Biblioteka-sub005/internal/metrics"
	"github.com/barthig/Biblioteka-sub005/internal/notify"
	"github.com/barthig/Biblioteka-sub005/internal/repository"
)

const minPatience = 24 * time.Hour

// Queue owns reservation status transitions. TryAllocate is the only code
// path that turns ACTIVE into PREPARED.
type Queue struct {
	db           db.DB
	reservations ReservationRepository
	ledger       *Ledger
	events       EventSink
	cfg          config.Config
	logger       *zap.Logger
}

func NewQueue(database db.DB, reservations ReservationRepository, ledger *Ledger, events EventSink, cfg config.Config, logger *zap.Logger) *Queue {
	return &Queue{
		db:           database,
		reservations: reservations,
		ledger:       ledger,
		events:       events,
		cfg:          cfg,
		logger:       logger,
	}
}

// Enqueue places a patron at the tail of an item's queue. checkAvailability
// is off when the caller already failed an acquire in the same request, so a
// copy freed in between does not bounce the patron back and forth.
func (q *Queue) Enqueue(ctx context.Context, itemID, patronID string, patience time.Duration, checkAvailability bool) (*repository.Reservation, error) {
	// Patience is bounded to [1 day, MaxQueueWait]; zero means the default.
	if patience <= 0 {
		patience = q.cfg.QueueWait
	}
	if patience < minPatience {
		return nil, fmt.Errorf("%w: patience window under %s", ErrInvalidState, minPatience)
	}
	if patience > q.cfg.MaxQueueWait {
		return nil, fmt.Errorf("%w: patience window exceeds %s", ErrInvalidState, q.cfg.MaxQueueWait)
	}

	var res *repository.Reservation
	err := db.InTx(ctx, q.db, func(tx db.Tx) error {
		existing, err := q.reservations.FindOpenForPatronAndItemTx(ctx, tx, itemID, patronID)
		if err != nil && !errors.Is(err, repository.ErrObjectNotFound) {
			return err
		}
		if existing != nil {
			return ErrDuplicateHold
		}

		if checkAvailability {
			// A free copy means "borrow instead of reserving".
			if _, err := q.ledger.AcquireTx(ctx, tx, itemID); err == nil {
				return fmt.Errorf("%w: a copy is available, borrow it instead", ErrCopyConflict)
			} else if !errors.Is(err, ErrNoneAvailable) {
				return err
			}
		}

		now := time.Now().UTC()
		res = &repository.Reservation{
			ID:        uuid.New(),
			ItemID:    itemID,
			PatronID:  patronID,
			Status:    repository.ReservationStatusActive,
			CreatedAt: now,
			ExpiresAt: now.Add(patience),
			UpdatedAt: now,
		}
		if err := q.reservations.CreateTx(ctx, tx, res); err != nil {
			// The read check above is advisory; the unique index on open
			// (item, patron) pairs is what actually serializes racing
			// enqueues.
			if errors.Is(err, repository.ErrUniqueViolation) {
				return ErrDuplicateHold
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.HoldsQueuedTotal.Inc()
	q.logger.Info("Reservation queued",
		zap.String("reservation_id", res.ID.String()),
		zap.String("item_id", itemID),
		zap.String("patron_id", patronID))
	return res, nil
}

// Cancel withdraws an ACTIVE or PREPARED reservation. Cancelling a PREPARED
// one releases its earmarked copy and re-runs allocation before returning,
// so the queue never stalls behind a cancellation.
func (q *Queue) Cancel(ctx context.Context, reservationID uuid.UUID, actor string) (*repository.Reservation, error) {
	var res *repository.Reservation
	err := db.InTx(ctx, q.db, func(tx db.Tx) error {
		var err error
		res, err = q.reservations.GetByIDTx(ctx, tx, reservationID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrNotFound
			}
			return err
		}

		if res.Status != repository.ReservationStatusActive && res.Status != repository.ReservationStatusPrepared {
			return fmt.Errorf("%w: reservation is %s", ErrInvalidState, res.Status)
		}

		if res.CopyID != nil {
			copy, err := q.ledger.copies.GetByIDTx(ctx, tx, *res.CopyID)
			if err != nil {
				return err
			}
			if err := q.ledger.ReleaseTx(ctx, tx, copy); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		res.Status = repository.ReservationStatusCancelled
		res.ResolvedAt = &now
		return q.reservations.UpdateTx(ctx, tx, res)
	})
	if err != nil {
		return nil, err
	}

	q.logger.Info("Reservation cancelled",
		zap.String("reservation_id", reservationID.String()),
		zap.String("actor", actor))

	if _, err := q.TryAllocate(ctx, res.ItemID); err != nil {
		q.logger.Error("Allocation after cancel failed",
			zap.String("item_id", res.ItemID), zap.Error(err))
	}
	return res, nil
}

// HeadOf returns the oldest ACTIVE reservation for an item, or ErrNotFound.
func (q *Queue) HeadOf(ctx context.Context, itemID string) (*repository.Reservation, error) {
	res, err := q.reservations.HeadOfQueue(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

// TryAllocate matches free copies to waiting patrons until either runs out.
// Each round is one transaction: lock the queue head, acquire a copy, flip
// the head to PREPARED with a fresh pickup deadline, record the hold-ready
// event. The copy row lock inside acquire serializes concurrent invocations
// per item, so returns, cancellations, intake, and the sweeper may all call
// this at once.
func (q *Queue) TryAllocate(ctx context.Context, itemID string) (int, error) {
	prepared := 0
	for {
		done, err := q.allocateOne(ctx, itemID)
		if err != nil {
			return prepared, err
		}
		if done {
			return prepared, nil
		}
		prepared++
		metrics.HoldsPreparedTotal.Inc()
	}
}

func (q *Queue) allocateOne(ctx context.Context, itemID string) (done bool, err error) {
	err = db.InTx(ctx, q.db, func(tx db.Tx) error {
		head, err := q.reservations.HeadOfQueueTx(ctx, tx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				done = true
				return nil
			}
			return err
		}

		copy, err := q.ledger.AcquireTx(ctx, tx, itemID)
		if err != nil {
			if errors.Is(err, ErrNoneAvailable) {
				done = true
				return nil
			}
			return err
		}

		now := time.Now().UTC()
		head.Status = repository.ReservationStatusPrepared
		head.CopyID = &copy.ID
		head.PreparedAt = &now
		head.ExpiresAt = now.Add(q.cfg.PickupWindow)
		if err := q.reservations.UpdateTx(ctx, tx, head); err != nil {
			return err
		}

		if err := q.events.EmitTx(ctx, tx, notify.HoldReady(head, now)); err != nil {
			return err
		}

		q.logger.Info("Reservation prepared",
			zap.String("reservation_id", head.ID.String()),
			zap.String("item_id", itemID),
			zap.String("copy_id", copy.ID.String()),
			zap.Time("pickup_deadline", head.ExpiresAt))
		return nil
	})
	return done, err
}
