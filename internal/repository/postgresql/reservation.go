package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/barthig/Biblioteka-sub005/internal/db"
	"github.com/barthig/Biblioteka-sub005/internal/repository"
)

const uniqueViolationCode = "23505"

type ReservationRepo struct {
	db db.DB
}

func NewReservationRepo(db db.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

func (r *ReservationRepo) CreateTx(ctx context.Context, tx db.Tx, res *repository.Reservation) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	_, err := tx.Exec(ctx, `
        INSERT INTO reservations (
            id, item_id, patron_id, status, copy_id, created_at, expires_at, prepared_at, resolved_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, res.ID, res.ItemID, res.PatronID, res.Status, res.CopyID, res.CreatedAt, res.ExpiresAt, res.PreparedAt, res.ResolvedAt, res.UpdatedAt)
	if err != nil {
		// The partial unique index on (item_id, patron_id) for open
		// reservations fires when two enqueues race past the read check.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return repository.ErrUniqueViolation
		}
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.Reservation, error) {
	var res repository.Reservation
	err := r.db.Get(ctx, &res, "SELECT * FROM reservations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx db.Tx, id uuid.UUID) (*repository.Reservation, error) {
	var res repository.Reservation
	err := tx.Get(ctx, &res, "SELECT * FROM reservations WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &res, nil
}

// HeadOfQueueTx returns the oldest ACTIVE reservation for an item and locks
// it. The id tiebreak keeps the order total when creation times collide.
// SKIP LOCKED lets a concurrent allocator move on to the next entry instead
// of waiting, so two freed copies can be matched to two patrons in parallel.
func (r *ReservationRepo) HeadOfQueueTx(ctx context.Context, tx db.Tx, itemID string) (*repository.Reservation, error) {
	var res repository.Reservation
	err := tx.Get(ctx, &res, `
        SELECT * FROM reservations
        WHERE item_id = $1 AND status = $2
        ORDER BY created_at ASC, id ASC
        LIMIT 1
        FOR UPDATE SKIP LOCKED
    `, itemID, repository.ReservationStatusActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepo) HeadOfQueue(ctx context.Context, itemID string) (*repository.Reservation, error) {
	var res repository.Reservation
	err := r.db.Get(ctx, &res, `
        SELECT * FROM reservations
        WHERE item_id = $1 AND status = $2
        ORDER BY created_at ASC, id ASC
        LIMIT 1
    `, itemID, repository.ReservationStatusActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &res, nil
}

// FindOpenForPatronAndItemTx finds the patron's ACTIVE or PREPARED
// reservation for an item, if any. Used for the duplicate-hold check and for
// matching a checkout against an outstanding hold.
func (r *ReservationRepo) FindOpenForPatronAndItemTx(ctx context.Context, tx db.Tx, itemID, patronID string) (*repository.Reservation, error) {
	var res repository.Reservation
	err := tx.Get(ctx, &res, `
        SELECT * FROM reservations
        WHERE item_id = $1 AND patron_id = $2 AND status = ANY($3)
        ORDER BY created_at ASC, id ASC
        LIMIT 1
    `, itemID, patronID, []string{string(repository.ReservationStatusActive), string(repository.ReservationStatusPrepared)})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &res, nil
}

// FindPreparedByCopyTx finds the PREPARED reservation holding a given copy.
// Used when a staff member retires an earmarked copy.
func (r *ReservationRepo) FindPreparedByCopyTx(ctx context.Context, tx db.Tx, copyID uuid.UUID) (*repository.Reservation, error) {
	var res repository.Reservation
	err := tx.Get(ctx, &res, `
        SELECT * FROM reservations
        WHERE copy_id = $1 AND status = $2
        LIMIT 1
        FOR UPDATE
    `, copyID, repository.ReservationStatusPrepared)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepo) CountOpenByPatron(ctx context.Context, patronID string) (int, error) {
	var count int
	err := r.db.ExecQueryRow(ctx, `
        SELECT COUNT(*) FROM reservations WHERE patron_id = $1 AND status = ANY($2)
    `, patronID, []string{string(repository.ReservationStatusActive), string(repository.ReservationStatusPrepared)}).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open reservations for patron %s: %w", patronID, err)
	}
	return count, nil
}

// CountAhead reports how many ACTIVE reservations precede the given one in
// its item's queue.
func (r *ReservationRepo) CountAhead(ctx context.Context, res *repository.Reservation) (int, error) {
	var count int
	err := r.db.ExecQueryRow(ctx, `
        SELECT COUNT(*) FROM reservations
        WHERE item_id = $1 AND status = $2
          AND (created_at < $3 OR (created_at = $3 AND id < $4))
    `, res.ItemID, repository.ReservationStatusActive, res.CreatedAt, res.ID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count queue position: %w", err)
	}
	return count, nil
}

func (r *ReservationRepo) UpdateTx(ctx context.Context, tx db.Tx, res *repository.Reservation) error {
	res.UpdatedAt = time.Now().UTC()
	cmdTag, err := tx.Exec(ctx, `
        UPDATE reservations
        SET
            status = $2,
            copy_id = $3,
            expires_at = $4,
            prepared_at = $5,
            resolved_at = $6,
            updated_at = $7
        WHERE id = $1
    `, res.ID, res.Status, res.CopyID, res.ExpiresAt, res.PreparedAt, res.ResolvedAt, res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update reservation %s: %w", res.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

// FindLapsed returns reservations in the given status whose deadline passed.
// The sweeper re-evaluates these every cycle, so a missed run only delays
// expiry.
func (r *ReservationRepo) FindLapsed(ctx context.Context, status repository.ReservationStatus, now time.Time, limit int) ([]*repository.Reservation, error) {
	query := `
        SELECT * FROM reservations
        WHERE status = $1 AND expires_at < $2
        ORDER BY expires_at ASC
    `
	args := []interface{}{status, now}
	if limit > 0 {
		query += " LIMIT $3"
		args = append(args, limit)
	}

	var reservations []*repository.Reservation
	err := r.db.Select(ctx, &reservations, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find lapsed reservations: %w", err)
	}
	return reservations, nil
}

func (r *ReservationRepo) ListByItem(ctx context.Context, itemID string) ([]*repository.Reservation, error) {
	var reservations []*repository.Reservation
	err := r.db.Select(ctx, &reservations, `
        SELECT * FROM reservations
        WHERE item_id = $1 AND status = ANY($2)
        ORDER BY created_at ASC, id ASC
    `, itemID, []string{string(repository.ReservationStatusActive), string(repository.ReservationStatusPrepared)})
	return reservations, err
}

// AnotherPatronWaiting reports whether any other patron has an open
// reservation for the item. Blocks loan extension when true.
func (r *ReservationRepo) AnotherPatronWaiting(ctx context.Context, itemID, patronID string) (bool, error) {
	var count int
	err := r.db.ExecQueryRow(ctx, `
        SELECT COUNT(*) FROM reservations
        WHERE item_id = $1 AND patron_id <> $2 AND status = ANY($3)
    `, itemID, patronID, []string{string(repository.ReservationStatusActive), string(repository.ReservationStatusPrepared)}).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
