package circulation

import (
	"context"
	"errors"
	"fmt"
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

// Loans converts holds and direct requests into loan records and is the
// terminal consumer of a successful allocation. On return it feeds the freed
// copy straight back to the queue.
type Loans struct {
	db           db.DB
	loans        LoanRepository
	reservations ReservationRepository
	copies       CopyRepository
	ledger       *Ledger
	queue        *Queue
	patrons      PatronDirectory
	events       EventSink
	loanCache    *cache.LoanCache
	cfg          config.Config
	logger       *zap.Logger
}

func NewLoans(
	database db.DB,
	loans LoanRepository,
	reservations ReservationRepository,
	copies CopyRepository,
	ledger *Ledger,
	queue *Queue,
	patrons PatronDirectory,
	events EventSink,
	loanCache *cache.LoanCache,
	cfg config.Config,
	logger *zap.Logger,
) *Loans {
	return &Loans{
		db:           database,
		loans:        loans,
		reservations: reservations,
		copies:       copies,
		ledger:       ledger,
		queue:        queue,
		patrons:      patrons,
		events:       events,
		loanCache:    loanCache,
		cfg:          cfg,
		logger:       logger,
	}
}

// CheckoutRequest names what the patron wants to walk out with. Exactly one
// of ReservationID / CopyID / ItemID drives the copy selection; an open
// reservation for the same item is matched and fulfilled either way.
type CheckoutRequest struct {
	PatronID      string
	ItemID        string
	ReservationID *uuid.UUID
	CopyID        *uuid.UUID
}

func (l *Loans) Checkout(ctx context.Context, req CheckoutRequest) (*repository.Loan, error) {
	patron, err := l.patrons.GetByID(ctx, req.PatronID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: patron %s", ErrNotFound, req.PatronID)
		}
		return nil, err
	}
	if patron.Blocked {
		return nil, ErrPatronBlocked
	}

	loanLimit := patron.LoanLimit
	if loanLimit <= 0 {
		loanLimit = l.cfg.MaxActiveLoans
	}
	active, err := l.loans.CountActiveByPatron(ctx, req.PatronID)
	if err != nil {
		return nil, err
	}
	if active >= loanLimit {
		return nil, fmt.Errorf("%w: %d active loans", ErrLimitReached, active)
	}

	var loan *repository.Loan
	err = db.InTx(ctx, l.db, func(tx db.Tx) error {
		res, err := l.resolveReservationTx(ctx, tx, req)
		if err != nil {
			return err
		}

		copy, err := l.selectCopyTx(ctx, tx, req, res)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if res != nil {
			res.Status = repository.ReservationStatusFulfilled
			res.ResolvedAt = &now
			if res.CopyID == nil {
				res.CopyID = &copy.ID
			}
			if err := l.reservations.UpdateTx(ctx, tx, res); err != nil {
				return err
			}
		}

		loan = &repository.Loan{
			ID:         uuid.New(),
			CopyID:     copy.ID,
			ItemID:     copy.ItemID,
			PatronID:   req.PatronID,
			BorrowedAt: now,
			DueAt:      now.Add(l.cfg.LoanPeriod),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if res != nil {
			id := res.ID
			loan.ReservationID = &id
		}
		return l.loans.CreateTx(ctx, tx, loan)
	})
	if err != nil {
		return nil, err
	}

	l.loanCache.Set(loan)
	metrics.LoansCreatedTotal.Inc()
	l.logger.Info("Loan created",
		zap.String("loan_id", loan.ID.String()),
		zap.String("copy_id", loan.CopyID.String()),
		zap.String("patron_id", loan.PatronID),
		zap.Time("due_at", loan.DueAt))
	return loan, nil
}

// resolveReservationTx locks the reservation the checkout should consume:
// the explicitly named one, or the patron's open reservation for the item.
func (l *Loans) resolveReservationTx(ctx context.Context, tx db.Tx, req CheckoutRequest) (*repository.Reservation, error) {
	if req.ReservationID != nil {
		res, err := l.reservations.GetByIDTx(ctx, tx, *req.ReservationID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, req.ReservationID)
			}
			return nil, err
		}
		if res.PatronID != req.PatronID {
			return nil, ErrForbidden
		}
		if res.Status != repository.ReservationStatusActive && res.Status != repository.ReservationStatusPrepared {
			return nil, fmt.Errorf("%w: reservation is %s", ErrInvalidState, res.Status)
		}
		return res, nil
	}

	itemID := req.ItemID
	if itemID == "" && req.CopyID != nil {
		copy, err := l.copies.GetByID(ctx, *req.CopyID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return nil, fmt.Errorf("%w: copy %s", ErrNotFound, req.CopyID)
			}
			return nil, err
		}
		itemID = copy.ItemID
	}

	res, err := l.reservations.FindOpenForPatronAndItemTx(ctx, tx, itemID, req.PatronID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return res, nil
}

func (l *Loans) selectCopyTx(ctx context.Context, tx db.Tx, req CheckoutRequest, res *repository.Reservation) (*repository.Copy, error) {
	// A PREPARED hold already has a copy earmarked; the deadline is
	// re-checked at the moment of conversion so a stale hold is refused,
	// not silently honored.
	if res != nil && res.Status == repository.ReservationStatusPrepared {
		if time.Now().UTC().After(res.ExpiresAt) {
			return nil, ErrHoldExpired
		}
		if res.CopyID == nil {
			return nil, fmt.Errorf("%w: prepared reservation %s has no copy", ErrInvalidState, res.ID)
		}
		copy, err := l.copies.GetByIDTx(ctx, tx, *res.CopyID)
		if err != nil {
			return nil, err
		}
		if err := l.ledger.CheckoutCopyTx(ctx, tx, copy); err != nil {
			return nil, err
		}
		return copy, nil
	}

	if req.CopyID != nil {
		copy, err := l.copies.GetByIDTx(ctx, tx, *req.CopyID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return nil, fmt.Errorf("%w: copy %s", ErrNotFound, req.CopyID)
			}
			return nil, err
		}
		if copy.Status != repository.CopyStatusAvailable {
			return nil, fmt.Errorf("%w: copy is %s", ErrCopyConflict, copy.Status)
		}
		if err := l.ledger.CheckoutCopyTx(ctx, tx, copy); err != nil {
			return nil, err
		}
		return copy, nil
	}

	itemID := req.ItemID
	if itemID == "" && res != nil {
		itemID = res.ItemID
	}
	return l.ledger.AcquireForLoanTx(ctx, tx, itemID)
}

// Extend pushes the due date forward by one loan period. Refused when the
// cap is reached or when another patron is waiting in the item's queue.
func (l *Loans) Extend(ctx context.Context, loanID uuid.UUID, patronID string) (*repository.Loan, error) {
	var loan *repository.Loan
	err := db.InTx(ctx, l.db, func(tx db.Tx) error {
		var err error
		loan, err = l.loans.GetByIDTx(ctx, tx, loanID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return fmt.Errorf("%w: loan %s", ErrNotFound, loanID)
			}
			return err
		}

		if loan.PatronID != patronID {
			return ErrForbidden
		}
		if loan.ReturnedAt != nil {
			return fmt.Errorf("%w: loan already returned", ErrInvalidState)
		}
		if loan.Extensions >= l.cfg.MaxExtensions {
			return fmt.Errorf("%w: %d extensions used", ErrLimitReached, loan.Extensions)
		}

		waiting, err := l.reservations.AnotherPatronWaiting(ctx, loan.ItemID, patronID)
		if err != nil {
			return err
		}
		if waiting {
			return ErrQueueAhead
		}

		loan.DueAt = loan.DueAt.Add(l.cfg.LoanPeriod)
		loan.Extensions++
		return l.loans.UpdateTx(ctx, tx, loan)
	})
	if err != nil {
		return nil, err
	}

	l.loanCache.Set(loan)
	l.logger.Info("Loan extended",
		zap.String("loan_id", loan.ID.String()),
		zap.Int("extensions", loan.Extensions),
		zap.Time("due_at", loan.DueAt))
	return loan, nil
}

// Return closes the loan, releases the copy, and immediately re-runs
// allocation so the freed copy flows to the next queued patron instead of
// sitting idle until some later trigger.
func (l *Loans) Return(ctx context.Context, loanID uuid.UUID) (*repository.Loan, error) {
	var loan *repository.Loan
	err := db.InTx(ctx, l.db, func(tx db.Tx) error {
		var err error
		loan, err = l.loans.GetByIDTx(ctx, tx, loanID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return fmt.Errorf("%w: loan %s", ErrNotFound, loanID)
			}
			return err
		}
		if loan.ReturnedAt != nil {
			return fmt.Errorf("%w: loan already returned", ErrInvalidState)
		}

		now := time.Now().UTC()
		loan.ReturnedAt = &now
		if err := l.loans.UpdateTx(ctx, tx, loan); err != nil {
			return err
		}

		// A late return records the overdue fact even if no sweep caught it.
		// The due-date fingerprint collapses this with any sweeper emission.
		if now.After(loan.DueAt) {
			if err := l.events.EmitTx(ctx, tx, notify.LoanOverdue(loan, now)); err != nil {
				return err
			}
		}

		copy, err := l.copies.GetByIDTx(ctx, tx, loan.CopyID)
		if err != nil {
			return err
		}
		return l.ledger.ReleaseTx(ctx, tx, copy)
	})
	if err != nil {
		return nil, err
	}

	l.loanCache.Delete(loan.ID)
	metrics.LoansReturnedTotal.Inc()
	l.logger.Info("Loan returned",
		zap.String("loan_id", loan.ID.String()),
		zap.String("copy_id", loan.CopyID.String()))

	if _, err := l.queue.TryAllocate(ctx, loan.ItemID); err != nil {
		l.logger.Error("Allocation after return failed",
			zap.String("item_id", loan.ItemID), zap.Error(err))
	}
	return loan, nil
}

// ReturnByCopy resolves the active loan for a copy and returns it.
func (l *Loans) ReturnByCopy(ctx context.Context, copyID uuid.UUID) (*repository.Loan, error) {
	var loanID uuid.UUID
	err := db.InTx(ctx, l.db, func(tx db.Tx) error {
		loan, err := l.loans.GetActiveByCopyTx(ctx, tx, copyID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return fmt.Errorf("%w: no active loan for copy %s", ErrNotFound, copyID)
			}
			return err
		}
		loanID = loan.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l.Return(ctx, loanID)
}
