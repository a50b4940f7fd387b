package circulation

import "errors"

// The engine reports outcomes through a closed error taxonomy so callers can
// tell "resubmit later" conflicts apart from client mistakes and from holds
// that simply ran out of time. Match with errors.Is.
var (
	// Conflict family: correct request, unavailable resource. Safe to retry later.
	ErrNoneAvailable = errors.New("no copies available")
	ErrDuplicateHold = errors.New("patron already holds a reservation for this item")
	ErrCopyLoaned    = errors.New("copy is checked out and cannot be retired")
	ErrCopyConflict  = errors.New("copy is not available")
	ErrQueueAhead    = errors.New("item is reserved by another patron")
	ErrLimitReached  = errors.New("limit reached")

	// Client errors.
	ErrInvalidState  = errors.New("operation not allowed in current state")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("patron mismatch")
	ErrPatronBlocked = errors.New("patron account is blocked")

	// Expired is distinct from InvalidState: the hold was fine, the clock
	// was not.
	ErrHoldExpired = errors.New("hold expired before pickup")
)

// IsConflict groups the errors a caller may resolve by waiting and retrying.
func IsConflict(err error) bool {
	return errors.Is(err, ErrNoneAvailable) ||
		errors.Is(err, ErrDuplicateHold) ||
		errors.Is(err, ErrCopyLoaned) ||
		errors.Is(err, ErrCopyConflict) ||
		errors.Is(err, ErrQueueAhead) ||
		errors.Is(err, ErrLimitReached)
}
