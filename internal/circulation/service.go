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

// Service is the single entry point for circulation operations. It composes
// the ledger, the queue, and the loan flows and adds the policy checks that
// cut across them (blocked patrons, hold limits, catalog existence).
type Service struct {
	db           db.DB
	copies       CopyRepository
	catalog      Catalog
	reservations ReservationRepository
	loanRepo     LoanRepository
	patrons      PatronDirectory
	ledger       *Ledger
	queue        *Queue
	loans        *Loans
	events       EventSink
	cfg          config.Config
	logger       *zap.Logger
}

func NewService(
	database db.DB,
	copies CopyRepository,
	catalog Catalog,
	reservations ReservationRepository,
	loanRepo LoanRepository,
	patrons PatronDirectory,
	events EventSink,
	loanCache *cache.LoanCache,
	cfg config.Config,
	logger *zap.Logger,
) *Service {
	ledger := NewLedger(copies)
	queue := NewQueue(database, reservations, ledger, events, cfg, logger)
	loans := NewLoans(database, loanRepo, reservations, copies, ledger, queue, patrons, events, loanCache, cfg, logger)
	return &Service{
		db:           database,
		copies:       copies,
		catalog:      catalog,
		reservations: reservations,
		loanRepo:     loanRepo,
		patrons:      patrons,
		ledger:       ledger,
		queue:        queue,
		loans:        loans,
		events:       events,
		cfg:          cfg,
		logger:       logger,
	}
}

// BorrowOutcome is what a borrow request produced: a loan when a copy was
// free, otherwise a queued reservation.
type BorrowOutcome struct {
	Loan        *repository.Loan
	Reservation *repository.Reservation
	Position    int
}

// RequestBorrow is the patron-facing entry: hand over a copy right away if
// one is free, otherwise join the item's queue. Patience bounds how long the
// patron is willing to wait before the reservation lapses on its own.
func (s *Service) RequestBorrow(ctx context.Context, itemID, patronID string, patience time.Duration) (*BorrowOutcome, error) {
	patron, err := s.checkPatron(ctx, patronID)
	if err != nil {
		return nil, err
	}

	exists, err := s.catalog.ItemExists(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: item %s", ErrNotFound, itemID)
	}

	loan, err := s.loans.Checkout(ctx, CheckoutRequest{PatronID: patronID, ItemID: itemID})
	if err == nil {
		return &BorrowOutcome{Loan: loan}, nil
	}
	if !errors.Is(err, ErrNoneAvailable) {
		metrics.OperationErrorsTotal.WithLabelValues("borrow").Inc()
		return nil, err
	}

	if err := s.checkHoldLimit(ctx, patron); err != nil {
		return nil, err
	}
	res, err := s.queue.Enqueue(ctx, itemID, patronID, patience, false)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("borrow").Inc()
		return nil, err
	}
	position, err := s.reservations.CountAhead(ctx, res)
	if err != nil {
		position = 0
	}
	return &BorrowOutcome{Reservation: res, Position: position + 1}, nil
}

// PlaceHold queues a reservation without attempting a direct checkout first.
// Refused with ErrCopyConflict when a copy is free for the taking.
func (s *Service) PlaceHold(ctx context.Context, itemID, patronID string, patience time.Duration) (*repository.Reservation, error) {
	patron, err := s.checkPatron(ctx, patronID)
	if err != nil {
		return nil, err
	}
	exists, err := s.catalog.ItemExists(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: item %s", ErrNotFound, itemID)
	}
	if err := s.checkHoldLimit(ctx, patron); err != nil {
		return nil, err
	}
	return s.queue.Enqueue(ctx, itemID, patronID, patience, true)
}

// CancelHold withdraws a reservation. Patrons may only cancel their own;
// staff pass an empty patronID and bypass the ownership check.
func (s *Service) CancelHold(ctx context.Context, reservationID uuid.UUID, patronID string) (*repository.Reservation, error) {
	if patronID != "" {
		res, err := s.reservations.GetByID(ctx, reservationID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if res.PatronID != patronID {
			return nil, ErrForbidden
		}
	}
	actor := patronID
	if actor == "" {
		actor = "staff"
	}
	return s.queue.Cancel(ctx, reservationID, actor)
}

// Checkout converts a prepared hold (or a direct request) into a loan.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*repository.Loan, error) {
	loan, err := s.loans.Checkout(ctx, req)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("checkout").Inc()
		return nil, err
	}
	return loan, nil
}

func (s *Service) ExtendLoan(ctx context.Context, loanID uuid.UUID, patronID string) (*repository.Loan, error) {
	loan, err := s.loans.Extend(ctx, loanID, patronID)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("extend").Inc()
		return nil, err
	}
	return loan, nil
}

func (s *Service) ReturnLoan(ctx context.Context, loanID uuid.UUID) (*repository.Loan, error) {
	loan, err := s.loans.Return(ctx, loanID)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("return").Inc()
		return nil, err
	}
	return loan, nil
}

// ReturnCopy accepts a physical copy at the desk and closes whatever loan it
// belongs to.
func (s *Service) ReturnCopy(ctx context.Context, copyID uuid.UUID) (*repository.Loan, error) {
	loan, err := s.loans.ReturnByCopy(ctx, copyID)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("return").Inc()
		return nil, err
	}
	return loan, nil
}

// AddCopy registers a new unit and immediately offers it to the queue.
func (s *Service) AddCopy(ctx context.Context, itemID, shelfCode, note string) (*repository.Copy, error) {
	copy, err := s.ledger.AddCopy(ctx, itemID, shelfCode, note)
	if err != nil {
		return nil, err
	}
	if _, err := s.queue.TryAllocate(ctx, itemID); err != nil {
		s.logger.Error("Allocation after intake failed",
			zap.String("item_id", itemID), zap.Error(err))
	}
	return copy, nil
}

// MarkUnavailable retires a copy (damaged, lost, maintenance). Retiring an
// earmarked copy expires the affected prepared hold; the patron cannot keep
// their queue position because the pickup promise is void, so they are
// notified and must reserve again.
func (s *Service) MarkUnavailable(ctx context.Context, copyID uuid.UUID, status repository.CopyStatus, note string) (*repository.Copy, error) {
	var copy *repository.Copy
	var itemID string
	err := db.InTx(ctx, s.db, func(tx db.Tx) error {
		var err error
		copy, err = s.copies.GetByIDTx(ctx, tx, copyID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return fmt.Errorf("%w: copy %s", ErrNotFound, copyID)
			}
			return err
		}
		itemID = copy.ItemID

		wasHeld := copy.Status == repository.CopyStatusHeld
		if err := s.ledger.RetireTx(ctx, tx, copy, status, note); err != nil {
			return err
		}
		if !wasHeld {
			return nil
		}

		res, err := s.reservations.FindPreparedByCopyTx(ctx, tx, copyID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return nil
			}
			return err
		}
		now := time.Now().UTC()
		res.Status = repository.ReservationStatusExpired
		res.ResolvedAt = &now
		if err := s.reservations.UpdateTx(ctx, tx, res); err != nil {
			return err
		}
		metrics.HoldsExpiredTotal.Inc()
		return s.events.EmitTx(ctx, tx, notify.HoldExpired(res, now))
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("retire").Inc()
		return nil, err
	}

	s.logger.Info("Copy retired",
		zap.String("copy_id", copyID.String()),
		zap.String("status", string(status)))

	if _, err := s.queue.TryAllocate(ctx, itemID); err != nil {
		s.logger.Error("Allocation after retire failed",
			zap.String("item_id", itemID), zap.Error(err))
	}
	return copy, nil
}

// TryAllocate exposes the allocation round for callers outside the engine,
// the sweeper among them.
func (s *Service) TryAllocate(ctx context.Context, itemID string) (int, error) {
	return s.queue.TryAllocate(ctx, itemID)
}

// Queue hands the underlying queue to components that share its allocation
// loop, such as the sweeper.
func (s *Service) Queue() *Queue {
	return s.queue
}

// HoldStatus pairs a reservation with its queue position (1-based, zero for
// resolved ones).
type HoldStatus struct {
	Reservation *repository.Reservation
	Position    int
}

func (s *Service) GetHold(ctx context.Context, reservationID uuid.UUID) (*HoldStatus, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	status := &HoldStatus{Reservation: res}
	if res.Status == repository.ReservationStatusActive {
		ahead, err := s.reservations.CountAhead(ctx, res)
		if err != nil {
			return nil, err
		}
		status.Position = ahead + 1
	}
	return status, nil
}

func (s *Service) GetLoan(ctx context.Context, loanID uuid.UUID) (*repository.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return loan, nil
}

func (s *Service) ListLoansByPatron(ctx context.Context, patronID string, limit int, activeOnly bool) ([]*repository.Loan, error) {
	return s.loanRepo.GetByPatron(ctx, patronID, limit, activeOnly)
}

func (s *Service) GetCopy(ctx context.Context, copyID uuid.UUID) (*repository.Copy, error) {
	copy, err := s.copies.GetByID(ctx, copyID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return copy, nil
}

func (s *Service) ListCopies(ctx context.Context, itemID string) ([]*repository.Copy, error) {
	return s.copies.ListByItem(ctx, itemID)
}

func (s *Service) ListQueue(ctx context.Context, itemID string) ([]*repository.Reservation, error) {
	return s.reservations.ListByItem(ctx, itemID)
}

func (s *Service) checkPatron(ctx context.Context, patronID string) (*repository.Patron, error) {
	patron, err := s.patrons.GetByID(ctx, patronID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: patron %s", ErrNotFound, patronID)
		}
		return nil, err
	}
	if patron.Blocked {
		return nil, ErrPatronBlocked
	}
	return patron, nil
}

func (s *Service) checkHoldLimit(ctx context.Context, patron *repository.Patron) error {
	limit := patron.HoldLimit
	if limit <= 0 {
		limit = s.cfg.MaxActiveHolds
	}
	open, err := s.reservations.CountOpenByPatron(ctx, patron.ID)
	if err != nil {
		return err
	}
	if open >= limit {
		return fmt.Errorf("%w: %d open holds", ErrLimitReached, open)
	}
	return nil
}
