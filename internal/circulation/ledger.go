package circulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/barthig/Biblioteka-sub005/internal/db"
	"github.com/barthig/Biblioteka-sub005/internal/repository"
)

// Ledger is the only writer of copy status. Every method operates on a row
// the enclosing transaction has locked, which is what makes acquire exclusive
// among concurrent callers: the database hands each AVAILABLE row to at most
// one of them.
type Ledger struct {
	copies CopyRepository
}

func NewLedger(copies CopyRepository) *Ledger {
	return &Ledger{copies: copies}
}

// AcquireTx earmarks the oldest free copy of an item (AVAILABLE -> HELD).
// Returns ErrNoneAvailable when every copy is out or earmarked.
func (l *Ledger) AcquireTx(ctx context.Context, tx db.Tx, itemID string) (*repository.Copy, error) {
	copy, err := l.copies.AcquireAvailableTx(ctx, tx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNoneAvailable
		}
		return nil, fmt.Errorf("failed to acquire copy for item %s: %w", itemID, err)
	}
	if err := l.copies.UpdateStatusTx(ctx, tx, copy.ID, repository.CopyStatusHeld); err != nil {
		return nil, err
	}
	copy.Status = repository.CopyStatusHeld
	return copy, nil
}

// AcquireForLoanTx takes the oldest free copy straight to LOANED, skipping
// the HELD stop used for pickups. Direct checkouts go through here.
func (l *Ledger) AcquireForLoanTx(ctx context.Context, tx db.Tx, itemID string) (*repository.Copy, error) {
	copy, err := l.copies.AcquireAvailableTx(ctx, tx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrNoneAvailable
		}
		return nil, fmt.Errorf("failed to acquire copy for item %s: %w", itemID, err)
	}
	if err := l.copies.UpdateStatusTx(ctx, tx, copy.ID, repository.CopyStatusLoaned); err != nil {
		return nil, err
	}
	copy.Status = repository.CopyStatusLoaned
	return copy, nil
}

// CheckoutCopyTx loans out a specific, already row-locked copy.
// AVAILABLE or HELD (a prepared hold being converted) are eligible.
func (l *Ledger) CheckoutCopyTx(ctx context.Context, tx db.Tx, copy *repository.Copy) error {
	if copy.Status != repository.CopyStatusAvailable && copy.Status != repository.CopyStatusHeld {
		return ErrCopyConflict
	}
	if err := l.copies.UpdateStatusTx(ctx, tx, copy.ID, repository.CopyStatusLoaned); err != nil {
		return err
	}
	copy.Status = repository.CopyStatusLoaned
	return nil
}

// ReleaseTx puts a copy back into circulation. Releasing an AVAILABLE copy
// is a no-op, not an error; retired copies stay retired.
func (l *Ledger) ReleaseTx(ctx context.Context, tx db.Tx, copy *repository.Copy) error {
	switch copy.Status {
	case repository.CopyStatusAvailable:
		return nil
	case repository.CopyStatusHeld, repository.CopyStatusLoaned:
		if err := l.copies.UpdateStatusTx(ctx, tx, copy.ID, repository.CopyStatusAvailable); err != nil {
			return err
		}
		copy.Status = repository.CopyStatusAvailable
		return nil
	default:
		return nil
	}
}

// RetireTx forces a copy out of circulation (damaged, lost, maintenance).
// A LOANED copy cannot be retired; the caller has to wait for the return.
func (l *Ledger) RetireTx(ctx context.Context, tx db.Tx, copy *repository.Copy, status repository.CopyStatus, note string) error {
	if !status.Retired() {
		return fmt.Errorf("%w: %s is not a retirement status", ErrInvalidState, status)
	}
	if copy.Status == repository.CopyStatusLoaned {
		return ErrCopyLoaned
	}
	if err := l.copies.UpdateConditionTx(ctx, tx, copy.ID, status, note); err != nil {
		return err
	}
	copy.Status = status
	copy.ConditionNote = note
	return nil
}

// AddCopy records intake of a new unit. The caller triggers allocation so a
// waiting patron benefits immediately.
func (l *Ledger) AddCopy(ctx context.Context, itemID, shelfCode, note string) (*repository.Copy, error) {
	now := time.Now().UTC()
	copy := &repository.Copy{
		ID:            uuid.New(),
		ItemID:        itemID,
		Status:        repository.CopyStatusAvailable,
		ShelfCode:     shelfCode,
		ConditionNote: note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := l.copies.Create(ctx, copy); err != nil {
		return nil, fmt.Errorf("failed to add copy for item %s: %w", itemID, err)
	}
	return copy, nil
}
