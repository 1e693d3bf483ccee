package repository

import (
	"context"
	"errors"
	"time"

	"rental-hunter/internal/domain/interaction"
	"rental-hunter/internal/infra"
	"rental-hunter/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type InteractionRepository struct {
	db DBTX
}

func NewInteractionRepository(db DBTX) *InteractionRepository {
	return &InteractionRepository{db: db}
}

func (r *InteractionRepository) Create(ctx context.Context, rec *interaction.Interaction) error {
	metadata := rec.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO interactions (
			id, listing_id, target_id, channel, kind, subject, content,
			outcome, correlation_id, sent_at, delivered_at, responded_at, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rec.ID, rec.ListingID, rec.TargetID, string(rec.Channel), string(rec.Kind),
		rec.Subject, rec.Content, string(rec.Outcome), rec.CorrelationID,
		rec.SentAt, rec.DeliveredAt, rec.RespondedAt, metadata,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create interaction", err)
	}
	return nil
}

func (r *InteractionRepository) AttachDelivery(ctx context.Context, correlationID string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE interactions
		SET delivered_at = $2, outcome = $3
		WHERE correlation_id = $1 AND delivered_at IS NULL`,
		correlationID, at, string(interaction.OutcomeDelivered),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to attach delivery confirmation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "no interaction for correlation id",
			errs.Mark(pgx.ErrNoRows, errs.ErrUnknownCorrelation))
	}
	return nil
}

func (r *InteractionRepository) AttachResponse(ctx context.Context, correlationID string, at time.Time) (uuid.UUID, error) {
	var targetID uuid.UUID
	err := r.db.QueryRow(ctx, `
		UPDATE interactions
		SET responded_at = $2, outcome = $3
		WHERE correlation_id = $1
		RETURNING target_id`,
		correlationID, at, string(interaction.OutcomeResponded),
	).Scan(&targetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, infra.WrapRepoErr(infra.KindNotFound, "no interaction for correlation id",
				errs.Mark(err, errs.ErrUnknownCorrelation))
		}
		return uuid.Nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to attach response", err)
	}
	return targetID, nil
}
