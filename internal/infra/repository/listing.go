package repository

import (
	"context"
	"errors"
	"time"

	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/infra"
	"rental-hunter/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const listingColumns = `id, title, description, price, rooms, area, property_type,
	address, city, postal_code, source_site, source_url, source_id, features,
	status, first_seen, last_seen, still_available, duplicate_of, similarity_score`

type ListingRepository struct {
	db DBTX
}

func NewListingRepository(db DBTX) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	duplicateOf := l.DuplicateOf()
	if duplicateOf != nil {
		// Flatten before writing: duplicates must reference a canonical
		// record, never another duplicate.
		canonical, err := r.ResolveCanonical(ctx, *duplicateOf)
		if err != nil {
			return err
		}
		duplicateOf = &canonical
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO listings (`+listingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		l.ID(), l.Title(), l.Description(), l.Price(), l.Rooms(), l.Area(),
		l.PropertyType(), l.Address(), l.City(), l.PostalCode(),
		l.SourceSite(), l.SourceURL(), l.SourceID(), l.Features(),
		l.Status().String(), l.FirstSeen(), l.LastSeen(), l.StillAvailable(),
		duplicateOf, l.SimilarityScore(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "listing url already stored",
				errs.Mark(err, errs.ErrDuplicateListing))
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create listing", err)
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	row := r.db.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	return r.scanOne(row, "listing")
}

func (r *ListingRepository) FindBySourceURL(ctx context.Context, url string) (*listing.Listing, error) {
	row := r.db.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE source_url = $1`, url)
	return r.scanOne(row, "listing by url")
}

// FindCandidates returns the dedup comparison set: available canonical
// listings whose city contains the given city (case-insensitive) within the
// price band.
func (r *ListingRepository) FindCandidates(ctx context.Context, city string, minPrice, maxPrice float64) ([]*listing.Listing, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+listingColumns+`
		FROM listings
		WHERE city ILIKE '%' || $1 || '%'
		  AND price BETWEEN $2 AND $3
		  AND still_available
		  AND duplicate_of IS NULL
		ORDER BY first_seen`,
		city, minPrice, maxPrice,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query candidates", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *ListingRepository) Refresh(ctx context.Context, id uuid.UUID, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE listings SET last_seen = $2, still_available = TRUE WHERE id = $1`,
		id, now,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to refresh listing", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "listing not found",
			errs.Mark(pgx.ErrNoRows, errs.ErrListingNotFound))
	}
	return nil
}

func (r *ListingRepository) MarkContacted(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE listings SET status = $2 WHERE id = $1 AND status = $3`,
		id, listing.StatusContacted.String(), listing.StatusNew.String(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to mark listing contacted", err)
	}
	return nil
}

func (r *ListingRepository) ListUncontacted(ctx context.Context, limit int) ([]*listing.Listing, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+listingColumns+`
		FROM listings
		WHERE status = $1
		  AND still_available
		  AND duplicate_of IS NULL
		ORDER BY first_seen
		LIMIT $2`,
		listing.StatusNew.String(), limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list uncontacted listings", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ResolveCanonical follows a duplicate_of chain to its canonical root. The
// depth cap is defensive only; the write path keeps chains flat.
func (r *ListingRepository) ResolveCanonical(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	current := id
	for range 10 {
		var next *uuid.UUID
		err := r.db.QueryRow(ctx,
			`SELECT duplicate_of FROM listings WHERE id = $1`, current,
		).Scan(&next)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return uuid.Nil, infra.WrapRepoErr(infra.KindNotFound, "listing not found",
					errs.Mark(err, errs.ErrListingNotFound))
			}
			return uuid.Nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to resolve canonical listing", err)
		}
		if next == nil {
			return current, nil
		}
		current = *next
	}
	return uuid.Nil, infra.WrapRepoErr(infra.KindDBFailure, "duplicate chain too deep", nil)
}

func (r *ListingRepository) MarkStaleUnavailable(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE listings
		SET still_available = FALSE, status = $2
		WHERE last_seen < $1 AND still_available`,
		cutoff, listing.StatusUnavailable.String(),
	)
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to mark stale listings", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ListingRepository) scanOne(row pgx.Row, what string) (*listing.Listing, error) {
	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, what+" not found",
				errs.Mark(err, errs.ErrListingNotFound))
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan "+what, err)
	}
	return l, nil
}

func (r *ListingRepository) scanMany(rows pgx.Rows) ([]*listing.Listing, error) {
	var result []*listing.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan listing row", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "listing rows iteration failed", err)
	}
	return result, nil
}

func scanListing(row pgx.Row) (*listing.Listing, error) {
	var (
		id              uuid.UUID
		title           string
		description     string
		price           float64
		rooms           *int
		area            *float64
		propertyType    string
		address         string
		city            string
		postalCode      string
		sourceSite      string
		sourceURL       string
		sourceID        string
		features        []string
		status          string
		firstSeen       time.Time
		lastSeen        time.Time
		stillAvailable  bool
		duplicateOf     *uuid.UUID
		similarityScore *float64
	)
	if err := row.Scan(
		&id, &title, &description, &price, &rooms, &area, &propertyType,
		&address, &city, &postalCode, &sourceSite, &sourceURL, &sourceID,
		&features, &status, &firstSeen, &lastSeen, &stillAvailable,
		&duplicateOf, &similarityScore,
	); err != nil {
		return nil, err
	}
	return listing.Reconstruct(
		id, title, description, price, rooms, area,
		propertyType, address, city, postalCode,
		sourceSite, sourceURL, sourceID, features,
		listing.Status(status), firstSeen, lastSeen, stillAvailable,
		duplicateOf, similarityScore,
	), nil
}
