//go:generate mockgen -source ./repos.go -destination=./mocks/repos.go -package=mock_circulation
package circulation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/barthig/Biblioteka-sub005/internal/db"
	"github.com/barthig/Biblioteka-sub005/internal/notify"
	"github.com/barthig/Biblioteka-sub005/internal/repository"
)

// Repository interfaces the engine depends on. The postgresql package
// implements them; tests substitute gomock doubles.

type CopyRepository interface {
	Create(ctx context.Context, copy *repository.Copy) error
	GetByID(ctx context.Context, id uuid.UUID) (*repository.Copy, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id uuid.UUID) (*repository.Copy, error)
	AcquireAvailableTx(ctx context.Context, tx db.Tx, itemID string) (*repository.Copy, error)
	UpdateStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.CopyStatus) error
	UpdateConditionTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.CopyStatus, note string) error
	ListByItem(ctx context.Context, itemID string) ([]*repository.Copy, error)
}

type ReservationRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, res *repository.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*repository.Reservation, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id uuid.UUID) (*repository.Reservation, error)
	HeadOfQueueTx(ctx context.Context, tx db.Tx, itemID string) (*repository.Reservation, error)
	HeadOfQueue(ctx context.Context, itemID string) (*repository.Reservation, error)
	FindOpenForPatronAndItemTx(ctx context.Context, tx db.Tx, itemID, patronID string) (*repository.Reservation, error)
	FindPreparedByCopyTx(ctx context.Context, tx db.Tx, copyID uuid.UUID) (*repository.Reservation, error)
	CountOpenByPatron(ctx context.Context, patronID string) (int, error)
	CountAhead(ctx context.Context, res *repository.Reservation) (int, error)
	UpdateTx(ctx context.Context, tx db.Tx, res *repository.Reservation) error
	FindLapsed(ctx context.Context, status repository.ReservationStatus, now time.Time, limit int) ([]*repository.Reservation, error)
	ListByItem(ctx context.Context, itemID string) ([]*repository.Reservation, error)
	AnotherPatronWaiting(ctx context.Context, itemID, patronID string) (bool, error)
}

type LoanRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, loan *repository.Loan) error
	GetByID(ctx context.Context, id uuid.UUID) (*repository.Loan, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id uuid.UUID) (*repository.Loan, error)
	GetActiveByCopyTx(ctx context.Context, tx db.Tx, copyID uuid.UUID) (*repository.Loan, error)
	UpdateTx(ctx context.Context, tx db.Tx, loan *repository.Loan) error
	CountActiveByPatron(ctx context.Context, patronID string) (int, error)
	GetByPatron(ctx context.Context, patronID string, limit int, activeOnly bool) ([]*repository.Loan, error)
	GetAllActive(ctx context.Context) ([]*repository.Loan, error)
}

// PatronDirectory is the external identity collaborator; only blocked state
// and limits are consulted here.
type PatronDirectory interface {
	GetByID(ctx context.Context, id string) (*repository.Patron, error)
}

// Catalog is the external catalog collaborator, reduced to the one question
// the engine asks.
type Catalog interface {
	ItemExists(ctx context.Context, itemID string) (bool, error)
}

// EventSink records events transactionally; delivery happens elsewhere.
type EventSink interface {
	EmitTx(ctx context.Context, tx db.Tx, event notify.Event) error
}
