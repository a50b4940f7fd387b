package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrObjectNotFound  = errors.New("not found")
	ErrUniqueViolation = errors.New("unique constraint violated")
)

type CopyStatus string

const (
	CopyStatusAvailable   CopyStatus = "AVAILABLE"
	CopyStatusHeld        CopyStatus = "HELD"
	CopyStatusLoaned      CopyStatus = "LOANED"
	CopyStatusDamaged     CopyStatus = "DAMAGED"
	CopyStatusLost        CopyStatus = "LOST"
	CopyStatusMaintenance CopyStatus = "MAINTENANCE"
)

// Retired reports whether the status removes the copy from circulation
// without deleting the row.
func (s CopyStatus) Retired() bool {
	return s == CopyStatusDamaged || s == CopyStatusLost || s == CopyStatusMaintenance
}

type Copy struct {
	ID            uuid.UUID  `db:"id"`
	ItemID        string     `db:"item_id"`
	Status        CopyStatus `db:"status"`
	ShelfCode     string     `db:"shelf_code"`
	ConditionNote string     `db:"condition_note"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "ACTIVE"
	ReservationStatusPrepared  ReservationStatus = "PREPARED"
	ReservationStatusFulfilled ReservationStatus = "FULFILLED"
	ReservationStatusExpired   ReservationStatus = "EXPIRED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

type Reservation struct {
	ID         uuid.UUID         `db:"id"`
	ItemID     string            `db:"item_id"`
	PatronID   string            `db:"patron_id"`
	Status     ReservationStatus `db:"status"`
	CopyID     *uuid.UUID        `db:"copy_id"`
	CreatedAt  time.Time         `db:"created_at"`
	ExpiresAt  time.Time         `db:"expires_at"`
	PreparedAt *time.Time        `db:"prepared_at"`
	ResolvedAt *time.Time        `db:"resolved_at"`
	UpdatedAt  time.Time         `db:"updated_at"`
}

type Loan struct {
	ID            uuid.UUID  `db:"id"`
	CopyID        uuid.UUID  `db:"copy_id"`
	ItemID        string     `db:"item_id"`
	PatronID      string     `db:"patron_id"`
	ReservationID *uuid.UUID `db:"reservation_id"`
	BorrowedAt    time.Time  `db:"borrowed_at"`
	DueAt         time.Time  `db:"due_at"`
	ReturnedAt    *time.Time `db:"returned_at"`
	Extensions    int        `db:"extensions"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type Patron struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Blocked   bool   `db:"blocked"`
	LoanLimit int    `db:"loan_limit"`
	HoldLimit int    `db:"hold_limit"`
}
