package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/barthig/Biblioteka-sub005/internal/db"
	"github.com/barthig/Biblioteka-sub005/internal/repository"
)

type CopyRepo struct {
	db db.DB
}

func NewCopyRepo(db db.DB) *CopyRepo {
	return &CopyRepo{db: db}
}

func (r *CopyRepo) Create(ctx context.Context, copy *repository.Copy) error {
	if copy.ID == uuid.Nil {
		copy.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO copies (
            id, item_id, status, shelf_code, condition_note, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, copy.ID, copy.ItemID, copy.Status, copy.ShelfCode, copy.ConditionNote, copy.CreatedAt, copy.UpdatedAt)
	return err
}

func (r *CopyRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.Copy, error) {
	var copy repository.Copy
	err := r.db.Get(ctx, &copy, "SELECT * FROM copies WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &copy, nil
}

// GetByIDTx locks the copy row for the duration of the transaction. Every
// status mutation goes through a row acquired this way.
func (r *CopyRepo) GetByIDTx(ctx context.Context, tx db.Tx, id uuid.UUID) (*repository.Copy, error) {
	var copy repository.Copy
	err := tx.Get(ctx, &copy, "SELECT * FROM copies WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &copy, nil
}

// AcquireAvailableTx picks the oldest AVAILABLE copy of an item and locks it.
// SKIP LOCKED guarantees concurrent callers never block on, or receive, the
// same row: each gets a distinct copy or ErrObjectNotFound.
func (r *CopyRepo) AcquireAvailableTx(ctx context.Context, tx db.Tx, itemID string) (*repository.Copy, error) {
	var copy repository.Copy
	err := tx.Get(ctx, &copy, `
        SELECT * FROM copies
        WHERE item_id = $1 AND status = $2
        ORDER BY created_at ASC, id ASC
        LIMIT 1
        FOR UPDATE SKIP LOCKED
    `, itemID, repository.CopyStatusAvailable)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &copy, nil
}

func (r *CopyRepo) UpdateStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.CopyStatus) error {
	cmdTag, err := tx.Exec(ctx, `
        UPDATE copies SET status = $2, updated_at = $3 WHERE id = $1
    `, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update copy %s status: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *CopyRepo) UpdateConditionTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.CopyStatus, note string) error {
	cmdTag, err := tx.Exec(ctx, `
        UPDATE copies SET status = $2, condition_note = $3, updated_at = $4 WHERE id = $1
    `, id, status, note, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update copy %s condition: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *CopyRepo) ListByItem(ctx context.Context, itemID string) ([]*repository.Copy, error) {
	var copies []*repository.Copy
	err := r.db.Select(ctx, &copies, `
        SELECT * FROM copies WHERE item_id = $1 ORDER BY created_at ASC, id ASC
    `, itemID)
	return copies, err
}

// ItemExists answers the catalog question from the copies table: an item is
// known once at least one copy of it was registered.
func (r *CopyRepo) ItemExists(ctx context.Context, itemID string) (bool, error) {
	var count int
	err := r.db.ExecQueryRow(ctx, "SELECT COUNT(*) FROM copies WHERE item_id = $1", itemID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
