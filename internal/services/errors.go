// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/the-exchanger/exchanger-backend/internal/models"
)

// Error taxonomy surfaced by the services. Handlers translate these into
// HTTP statuses; nothing below is retriable.
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrOfferNotFound   = errors.New("offer not found")
	ErrUserNotFound    = errors.New("user not found")

	// ErrForbidden marks authorization failures. Wrap it with the action
	// that was refused: fmt.Errorf("%w: only proposer can ...", ErrForbidden).
	ErrForbidden = errors.New("not authorized")

	ErrSelfOffer          = errors.New("you cannot make an offer on your own listing")
	ErrEmptyMessage       = errors.New("message text is required")
	ErrInvalidOutcome     = errors.New("invalid status")
	ErrInvalidStatus      = errors.New("invalid listing status")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ConflictError reports a lifecycle transition attempted from a state that
// disallows it. The current state is echoed so the caller can resync.
type ConflictError struct {
	Current models.OfferStatus
	Reason  string
}

func (e *ConflictError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("offer is already %s", e.Current)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrListingNotFound) ||
		errors.Is(err, ErrOfferNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}
