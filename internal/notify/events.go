package notify

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/barthig/Biblioteka-sub005/internal/repository"
)

type EventType string

const (
	EventHoldReady   EventType = "hold_ready"
	EventHoldExpired EventType = "hold_expired"
	EventLoanDueSoon EventType = "loan_due_soon"
	EventLoanOverdue EventType = "loan_overdue"
)

// Event is the payload written to the notification sink. Consumers must
// treat repeated delivery of the same fingerprint as a no-op.
type Event struct {
	Type          EventType  `json:"type"`
	Fingerprint   string     `json:"fingerprint"`
	ReservationID string     `json:"reservation_id,omitempty"`
	LoanID        string     `json:"loan_id,omitempty"`
	CopyID        string     `json:"copy_id,omitempty"`
	ItemID        string     `json:"item_id"`
	PatronID      string     `json:"patron_id"`
	OccurredAt    time.Time  `json:"occurred_at"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	DueAt         *time.Time `json:"due_at,omitempty"`
}

// Fingerprint derives a stable identifier from the entity and the transition
// timestamp, so retrying the same transition produces the same event and a
// later transition of the same entity produces a different one.
func Fingerprint(eventType EventType, entityID string, transitionAt time.Time) string {
	sum := sha256.Sum256([]byte(string(eventType) + "|" + entityID + "|" + transitionAt.UTC().Format(time.RFC3339)))
	return hex.EncodeToString(sum[:])
}

func HoldReady(res *repository.Reservation, preparedAt time.Time) Event {
	e := Event{
		Type:          EventHoldReady,
		Fingerprint:   Fingerprint(EventHoldReady, res.ID.String(), preparedAt),
		ReservationID: res.ID.String(),
		ItemID:        res.ItemID,
		PatronID:      res.PatronID,
		OccurredAt:    preparedAt.UTC(),
	}
	if res.CopyID != nil {
		e.CopyID = res.CopyID.String()
	}
	expires := res.ExpiresAt.UTC()
	e.ExpiresAt = &expires
	return e
}

func HoldExpired(res *repository.Reservation, expiredAt time.Time) Event {
	return Event{
		Type:          EventHoldExpired,
		Fingerprint:   Fingerprint(EventHoldExpired, res.ID.String(), expiredAt),
		ReservationID: res.ID.String(),
		ItemID:        res.ItemID,
		PatronID:      res.PatronID,
		OccurredAt:    expiredAt.UTC(),
	}
}

// LoanDueSoon fingerprints on the due date rather than the sweep time, so a
// reminder is emitted at most once per due date even across many sweeps.
func LoanDueSoon(loan *repository.Loan, sweptAt time.Time) Event {
	due := loan.DueAt.UTC()
	return Event{
		Type:        EventLoanDueSoon,
		Fingerprint: Fingerprint(EventLoanDueSoon, loan.ID.String(), loan.DueAt),
		LoanID:      loan.ID.String(),
		CopyID:      loan.CopyID.String(),
		ItemID:      loan.ItemID,
		PatronID:    loan.PatronID,
		OccurredAt:  sweptAt.UTC(),
		DueAt:       &due,
	}
}

func LoanOverdue(loan *repository.Loan, sweptAt time.Time) Event {
	due := loan.DueAt.UTC()
	return Event{
		Type:        EventLoanOverdue,
		Fingerprint: Fingerprint(EventLoanOverdue, loan.ID.String(), loan.DueAt),
		LoanID:      loan.ID.String(),
		CopyID:      loan.CopyID.String(),
		ItemID:      loan.ItemID,
		PatronID:    loan.PatronID,
		OccurredAt:  sweptAt.UTC(),
		DueAt:       &due,
	}
}
