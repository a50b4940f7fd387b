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

type LoanRepo struct {
	db db.DB
}

func NewLoanRepo(db db.DB) *LoanRepo {
	return &LoanRepo{db: db}
}

func (r *LoanRepo) CreateTx(ctx context.Context, tx db.Tx, loan *repository.Loan) error {
	if loan.ID == uuid.Nil {
		loan.ID = uuid.New()
	}
	_, err := tx.Exec(ctx, `
        INSERT INTO loans (
            id, copy_id, item_id, patron_id, reservation_id, borrowed_at, due_at, returned_at, extensions, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, loan.ID, loan.CopyID, loan.ItemID, loan.PatronID, loan.ReservationID, loan.BorrowedAt, loan.DueAt, loan.ReturnedAt, loan.Extensions, loan.CreatedAt, loan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert loan: %w", err)
	}
	return nil
}

func (r *LoanRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.Loan, error) {
	var loan repository.Loan
	err := r.db.Get(ctx, &loan, "SELECT * FROM loans WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &loan, nil
}

func (r *LoanRepo) GetByIDTx(ctx context.Context, tx db.Tx, id uuid.UUID) (*repository.Loan, error) {
	var loan repository.Loan
	err := tx.Get(ctx, &loan, "SELECT * FROM loans WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &loan, nil
}

// GetActiveByCopyTx locks the open loan for a copy. At most one exists
// because a copy must be AVAILABLE again before it can be loaned out.
func (r *LoanRepo) GetActiveByCopyTx(ctx context.Context, tx db.Tx, copyID uuid.UUID) (*repository.Loan, error) {
	var loan repository.Loan
	err := tx.Get(ctx, &loan, `
        SELECT * FROM loans
        WHERE copy_id = $1 AND returned_at IS NULL
        LIMIT 1
        FOR UPDATE
    `, copyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &loan, nil
}

func (r *LoanRepo) UpdateTx(ctx context.Context, tx db.Tx, loan *repository.Loan) error {
	loan.UpdatedAt = time.Now().UTC()
	cmdTag, err := tx.Exec(ctx, `
        UPDATE loans
        SET
            due_at = $2,
            returned_at = $3,
            extensions = $4,
            updated_at = $5
        WHERE id = $1
    `, loan.ID, loan.DueAt, loan.ReturnedAt, loan.Extensions, loan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update loan %s: %w", loan.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *LoanRepo) CountActiveByPatron(ctx context.Context, patronID string) (int, error) {
	var count int
	err := r.db.ExecQueryRow(ctx, `
        SELECT COUNT(*) FROM loans WHERE patron_id = $1 AND returned_at IS NULL
    `, patronID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active loans for patron %s: %w", patronID, err)
	}
	return count, nil
}

func (r *LoanRepo) GetByPatron(ctx context.Context, patronID string, limit int, activeOnly bool) ([]*repository.Loan, error) {
	query := "SELECT * FROM loans WHERE patron_id = $1"
	args := []interface{}{patronID}

	if activeOnly {
		query += " AND returned_at IS NULL"
	}

	query += " ORDER BY borrowed_at DESC"

	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	var loans []*repository.Loan
	err := r.db.Select(ctx, &loans, query, args...)
	return loans, err
}

func (r *LoanRepo) GetAllActive(ctx context.Context) ([]*repository.Loan, error) {
	var loans []*repository.Loan
	err := r.db.Select(ctx, &loans, `
        SELECT * FROM loans
        WHERE returned_at IS NULL
        ORDER BY due_at ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to get all active loans: %w", err)
	}
	return loans, nil
}
