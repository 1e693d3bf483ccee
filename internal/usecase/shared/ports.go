package shared

import (
	"context"

	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/domain/outreach"
)

// Collector is one source-specific listing collector. Collection is a lazy,
// finite, single-pass scan; a fresh call re-scans from the start.
type Collector interface {
	Name() string
	Collect(ctx context.Context, city string, criteria listing.Criteria) ([]listing.Raw, error)
}

// DispatchResult reports one send attempt. Expected channel failures (SMTP
// refusal, telephony rejection) come back as Success=false with a reason;
// errors are reserved for programming or transport-setup faults. Either way
// the caller must not consume an attempt.
type DispatchResult struct {
	Success       bool
	CorrelationID string
	Subject       string
	Content       string
	Reason        string
	Metadata      map[string]string
}

// Dispatcher sends one contact attempt over the channel implied by the
// attempt kind.
type Dispatcher interface {
	Send(ctx context.Context, target *outreach.Target, lst *listing.Listing, kind outreach.AttemptKind) (DispatchResult, error)
}
