package circulation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/barthig/Biblioteka-sub005/internal/cache"
	"github.com/barthig/Biblioteka-sub005/internal/config"
	"github.com/barthig/Biblioteka-sub005/internal/db"
	"github.com/barthig/Biblioteka-sub005/internal/metrics"
	"github.com/barthig/Biblioteka-sub005/internal/notify"
	"github.com/barthig/Biblioteka-sub005/internal/repository"
)

// Sweeper periodically expires lapsed reservations and emits loan reminders.
// It keeps no state between runs: every cycle re-reads deadlines from the
// database, so a restart or a long pause costs nothing but delay. The event
// fingerprints make re-emission after a crash harmless.
type Sweeper struct {
	db           db.DB
	reservations ReservationRepository
	copies       CopyRepository
	queue        *Queue
	ledger       *Ledger
	events       EventSink
	loanCache    *cache.LoanCache
	cfg          config.Config
	logger       *zap.Logger
}

func NewSweeper(
	database db.DB,
	reservations ReservationRepository,
	copies CopyRepository,
	queue *Queue,
	events EventSink,
	loanCache *cache.LoanCache,
	cfg config.Config,
	logger *zap.Logger,
) *Sweeper {
	return &Sweeper{
		db:           database,
		reservations: reservations,
		copies:       copies,
		queue:        queue,
		ledger:       queue.ledger,
		events:       events,
		loanCache:    loanCache,
		cfg:          cfg,
		logger:       logger,
	}
}

// Run sweeps on a fixed interval until the context ends. One sweep fires
// immediately so a restart does not wait a full interval to catch up on
// deadlines that passed while the process was down.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("Sweeper started", zap.Duration("interval", s.cfg.SweepInterval))
	s.Sweep(ctx)

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one full cycle. Failures are isolated per reservation and per
// loan: one bad row never blocks the rest of the batch.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := time.Now().UTC()
	s.expireLapsed(ctx, repository.ReservationStatusPrepared, now)
	s.expireLapsed(ctx, repository.ReservationStatusActive, now)
	s.remindLoans(ctx, now)
}

// expireLapsed expires reservations in the given status whose deadline
// passed. For PREPARED holds that frees the earmarked copy, so the queue is
// re-run for each affected item afterwards.
func (s *Sweeper) expireLapsed(ctx context.Context, status repository.ReservationStatus, now time.Time) {
	lapsed, err := s.reservations.FindLapsed(ctx, status, now, s.cfg.SweepBatchSize)
	if err != nil {
		s.logger.Error("Failed to list lapsed reservations",
			zap.String("status", string(status)), zap.Error(err))
		return
	}

	items := make(map[string]struct{})
	for _, res := range lapsed {
		expired, err := s.expireOne(ctx, res.ID, status, now)
		if err != nil {
			s.logger.Error("Failed to expire reservation",
				zap.String("reservation_id", res.ID.String()), zap.Error(err))
			metrics.OperationErrorsTotal.WithLabelValues("sweep").Inc()
			continue
		}
		if expired && status == repository.ReservationStatusPrepared {
			items[res.ItemID] = struct{}{}
		}
	}

	for itemID := range items {
		if _, err := s.queue.TryAllocate(ctx, itemID); err != nil {
			s.logger.Error("Allocation after expiry failed",
				zap.String("item_id", itemID), zap.Error(err))
		}
	}
}

// expireOne re-checks status and deadline under the row lock. The hold may
// have been picked up or cancelled between listing and locking; both are
// fine, the sweep just moves on.
func (s *Sweeper) expireOne(ctx context.Context, id uuid.UUID, expected repository.ReservationStatus, now time.Time) (bool, error) {
	expired := false
	err := db.InTx(ctx, s.db, func(tx db.Tx) error {
		res, err := s.reservations.GetByIDTx(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return nil
			}
			return err
		}
		if res.Status != expected || res.ExpiresAt.After(now) {
			return nil
		}

		if res.CopyID != nil {
			copy, err := s.copies.GetByIDTx(ctx, tx, *res.CopyID)
			if err != nil {
				return err
			}
			if err := s.ledger.ReleaseTx(ctx, tx, copy); err != nil {
				return err
			}
		}

		res.Status = repository.ReservationStatusExpired
		res.ResolvedAt = &now
		if err := s.reservations.UpdateTx(ctx, tx, res); err != nil {
			return err
		}
		if err := s.events.EmitTx(ctx, tx, notify.HoldExpired(res, now)); err != nil {
			return err
		}

		expired = true
		s.logger.Info("Reservation expired",
			zap.String("reservation_id", res.ID.String()),
			zap.String("item_id", res.ItemID),
			zap.String("was", string(expected)))
		return nil
	})
	if err == nil && expired {
		metrics.HoldsExpiredTotal.Inc()
	}
	return expired, err
}

// remindLoans emits due-soon and overdue events from the in-memory loan
// cache. Each event fingerprints on the due date, so the outbox drops the
// duplicates the repeated scans would otherwise produce.
func (s *Sweeper) remindLoans(ctx context.Context, now time.Time) {
	dueSoon := s.loanCache.DueBetween(now, now.Add(s.cfg.DueSoonWindow))
	for _, loan := range dueSoon {
		s.emitLoanEvent(ctx, notify.LoanDueSoon(loan, now), loan.ID)
	}

	overdue := s.loanCache.Overdue(now)
	for _, loan := range overdue {
		s.emitLoanEvent(ctx, notify.LoanOverdue(loan, now), loan.ID)
	}
}

func (s *Sweeper) emitLoanEvent(ctx context.Context, event notify.Event, loanID uuid.UUID) {
	err := db.InTx(ctx, s.db, func(tx db.Tx) error {
		return s.events.EmitTx(ctx, tx, event)
	})
	if err != nil {
		s.logger.Error("Failed to record loan reminder",
			zap.String("loan_id", loanID.String()),
			zap.String("type", string(event.Type)),
			zap.Error(err))
		metrics.OperationErrorsTotal.WithLabelValues("sweep").Inc()
	}
}
