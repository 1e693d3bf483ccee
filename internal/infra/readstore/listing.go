package readstore

import (
	"context"
	"strconv"

	"rental-hunter/internal/infra"
	"rental-hunter/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultListingLimit = 100

type ListingReadStore struct {
	pool *pgxpool.Pool
}

func NewListingReadStore(pool *pgxpool.Pool) queries.ListingQueries {
	return &ListingReadStore{pool: pool}
}

func (s *ListingReadStore) Search(ctx context.Context, filter queries.ListingFilter) ([]queries.ListingView, error) {
	query := `SELECT id, title, price, rooms, area, address, city,
	                 source_site, source_url, status, first_seen, last_seen,
	                 still_available, duplicate_of, similarity_score
	          FROM listings WHERE 1=1`

	args := make([]any, 0, 3)
	if filter.City != "" {
		args = append(args, filter.City)
		query += ` AND city = $` + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.OnlyAvailable {
		query += ` AND still_available = TRUE`
	}

	limit := filter.Limit
	if limit <= 0 || limit > defaultListingLimit {
		limit = defaultListingLimit
	}
	args = append(args, limit)
	query += ` ORDER BY last_seen DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to search listings", err)
	}
	defer rows.Close()

	views := make([]queries.ListingView, 0)
	for rows.Next() {
		var v queries.ListingView
		if err := rows.Scan(
			&v.ID, &v.Title, &v.Price, &v.Rooms, &v.Area, &v.Address, &v.City,
			&v.SourceSite, &v.SourceURL, &v.Status, &v.FirstSeen, &v.LastSeen,
			&v.StillAvailable, &v.DuplicateOf, &v.SimilarityScore,
		); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan listing row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate listing rows", err)
	}
	return views, nil
}
