package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Listing errors
	ErrListingNotFound  = errors.New("listing not found")
	ErrDuplicateListing = errors.New("duplicate listing")
	ErrInvalidListing   = errors.New("invalid listing data")

	// Outreach errors
	ErrTargetNotFound    = errors.New("outreach target not found")
	ErrTargetTerminal    = errors.New("outreach target in terminal state")
	ErrTargetNotEligible = errors.New("outreach target not eligible for contact")
	ErrAttemptConflict   = errors.New("concurrent attempt already recorded")

	// Channel errors
	ErrDispatchFailed     = errors.New("channel dispatch failed")
	ErrNoContactDetails   = errors.New("no contact details available")
	ErrUnknownCorrelation = errors.New("no interaction for correlation id")

	// Job errors
	ErrJobRunNotFound   = errors.New("job run not found")
	ErrJobAlreadyActive = errors.New("job already running")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
