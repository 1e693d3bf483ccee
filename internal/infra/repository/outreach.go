package repository

import (
	"context"
	"errors"
	"time"

	"rental-hunter/internal/domain/outreach"
	"rental-hunter/internal/infra"
	"rental-hunter/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const targetColumns = `id, listing_id, name, agency_name, email, phone, state,
	attempt_count, last_attempt_at, next_attempt_at, responded, responded_at,
	created_at, updated_at`

type OutreachRepository struct {
	db DBTX
}

func NewOutreachRepository(db DBTX) *OutreachRepository {
	return &OutreachRepository{db: db}
}

func (r *OutreachRepository) Create(ctx context.Context, t *outreach.Target) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO outreach_targets (`+targetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		t.ID(), t.ListingID(), t.Name(), t.AgencyName(), t.Email(), t.Phone(),
		t.State().String(), t.AttemptCount(), t.LastAttemptAt(), t.NextAttemptAt(),
		t.Responded(), t.RespondedAt(), t.CreatedAt(), t.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			// One target per canonical listing; a concurrent pass won the
			// creation race.
			return infra.WrapRepoErr(infra.KindDuplicateKey, "target already exists for listing", err)
		}
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr(infra.KindForeignKeyViolated, "listing does not exist", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create outreach target", err)
	}
	return nil
}

func (r *OutreachRepository) FindByID(ctx context.Context, id uuid.UUID) (*outreach.Target, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+targetColumns+` FROM outreach_targets WHERE id = $1`, id)
	return r.scanOne(row)
}

func (r *OutreachRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*outreach.Target, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+targetColumns+` FROM outreach_targets WHERE id = $1 FOR UPDATE`, id)
	return r.scanOne(row)
}

func (r *OutreachRepository) FindByListingID(ctx context.Context, listingID uuid.UUID) (*outreach.Target, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+targetColumns+` FROM outreach_targets WHERE listing_id = $1`, listingID)
	return r.scanOne(row)
}

// FindEligibleIDs applies the eligibility predicate as a query so the
// follow-up pass only visits plausible targets. Each hit is re-checked
// under a row lock before dispatch.
func (r *OutreachRepository) FindEligibleIDs(ctx context.Context, now time.Time, policy outreach.Policy) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM outreach_targets
		WHERE state NOT IN ($1, $2)
		  AND responded = FALSE
		  AND attempt_count < $3
		  AND (last_attempt_at IS NULL OR last_attempt_at <= $4)
		ORDER BY created_at`,
		outreach.StateResponded.String(), outreach.StateExhausted.String(),
		policy.MaxAttempts, now.Add(-policy.FollowUpDelay),
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query eligible targets", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan target id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "target id rows iteration failed", err)
	}
	return ids, nil
}

// RecordAttempt is the compare-and-update write of the escalation rule:
// the row is only updated if the attempt count still matches what the
// decision was based on and no response arrived meanwhile.
func (r *OutreachRepository) RecordAttempt(ctx context.Context, t *outreach.Target, expectedAttempts int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE outreach_targets
		SET state = $2, attempt_count = $3, last_attempt_at = $4,
		    next_attempt_at = $5, updated_at = $6
		WHERE id = $1 AND attempt_count = $7 AND responded = FALSE`,
		t.ID(), t.State().String(), t.AttemptCount(), t.LastAttemptAt(),
		t.NextAttemptAt(), t.UpdatedAt(), expectedAttempts,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to record attempt", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindConflict, "attempt already recorded concurrently",
			errs.Mark(pgx.ErrNoRows, errs.ErrAttemptConflict))
	}
	return nil
}

func (r *OutreachRepository) MarkResponded(ctx context.Context, t *outreach.Target) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE outreach_targets
		SET state = $2, responded = TRUE, responded_at = $3,
		    next_attempt_at = NULL, updated_at = $4
		WHERE id = $1`,
		t.ID(), t.State().String(), t.RespondedAt(), t.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to mark target responded", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "outreach target not found",
			errs.Mark(pgx.ErrNoRows, errs.ErrTargetNotFound))
	}
	return nil
}

func (r *OutreachRepository) scanOne(row pgx.Row) (*outreach.Target, error) {
	var (
		id            uuid.UUID
		listingID     uuid.UUID
		name          string
		agencyName    string
		email         string
		phone         string
		state         string
		attemptCount  int
		lastAttemptAt *time.Time
		nextAttemptAt *time.Time
		responded     bool
		respondedAt   *time.Time
		createdAt     time.Time
		updatedAt     time.Time
	)
	err := row.Scan(
		&id, &listingID, &name, &agencyName, &email, &phone, &state,
		&attemptCount, &lastAttemptAt, &nextAttemptAt, &responded, &respondedAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "outreach target not found",
				errs.Mark(err, errs.ErrTargetNotFound))
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan outreach target", err)
	}

	target, err := outreach.ReconstructTarget(
		id, listingID, name, agencyName, email, phone,
		outreach.State(state), attemptCount, lastAttemptAt, nextAttemptAt,
		responded, respondedAt, createdAt, updatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "stored target state is invalid", err)
	}
	return target, nil
}
