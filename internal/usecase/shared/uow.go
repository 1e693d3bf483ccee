package shared

import (
	"context"
	"time"

	"rental-hunter/internal/domain/interaction"
	"rental-hunter/internal/domain/jobrun"
	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/domain/outreach"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Listings() ListingRepository
	Outreach() OutreachRepository
	Interactions() InteractionRepository
	JobRuns() JobRunRepository
}

type ListingRepository interface {
	Create(ctx context.Context, l *listing.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error)
	FindBySourceURL(ctx context.Context, url string) (*listing.Listing, error)
	// FindCandidates pre-filters the dedup comparison set: available
	// canonical listings in the same city (case-insensitive substring) and
	// price band.
	FindCandidates(ctx context.Context, city string, minPrice, maxPrice float64) ([]*listing.Listing, error)
	Refresh(ctx context.Context, id uuid.UUID, now time.Time) error
	MarkContacted(ctx context.Context, id uuid.UUID) error
	// ListUncontacted returns canonical, available listings in status new.
	ListUncontacted(ctx context.Context, limit int) ([]*listing.Listing, error)
	// ResolveCanonical follows any duplicate_of chain down to its canonical
	// root, so duplicate references are flattened before they are written.
	ResolveCanonical(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	MarkStaleUnavailable(ctx context.Context, cutoff time.Time) (int64, error)
}

type OutreachRepository interface {
	Create(ctx context.Context, t *outreach.Target) error
	FindByID(ctx context.Context, id uuid.UUID) (*outreach.Target, error)
	// FindByIDForUpdate locks the target row for the rest of the
	// transaction; the read-decide-write sequence of the escalation rule
	// runs under this lock.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*outreach.Target, error)
	FindByListingID(ctx context.Context, listingID uuid.UUID) (*outreach.Target, error)
	FindEligibleIDs(ctx context.Context, now time.Time, policy outreach.Policy) ([]uuid.UUID, error)
	// RecordAttempt persists an applied attempt with a compare-and-update
	// keyed by id and the attempt count observed before dispatch. A
	// concurrent attempt surfaces as errs.ErrAttemptConflict.
	RecordAttempt(ctx context.Context, t *outreach.Target, expectedAttempts int) error
	MarkResponded(ctx context.Context, t *outreach.Target) error
}

type InteractionRepository interface {
	Create(ctx context.Context, rec *interaction.Interaction) error
	AttachDelivery(ctx context.Context, correlationID string, at time.Time) error
	// AttachResponse stamps the response timestamp on the interaction
	// matched by correlation key and returns the owning target id.
	AttachResponse(ctx context.Context, correlationID string, at time.Time) (uuid.UUID, error)
}

type JobRunRepository interface {
	Create(ctx context.Context, run *jobrun.JobRun) error
	Finalize(ctx context.Context, run *jobrun.JobRun) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
