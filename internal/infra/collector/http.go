// Package collector contains pluggable listing-source connectors.
//
// Connectors stay intentionally generic: no site-specific parsing rules,
// endpoint fingerprints or headers. Each source is expected to expose (or be
// proxied through) a JSON search API; the offline mock connector covers demos
// and tests.
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/pkg/errs"
	"rental-hunter/internal/usecase/shared"
)

// rawPayload mirrors the JSON shape of a source search hit before it is
// normalized into listing.Raw. Numeric fields stay text so the parsing rules
// in the listing domain see the source text verbatim.
type rawPayload struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price,omitempty"`
	Rooms       string   `json:"rooms,omitempty"`
	Area        string   `json:"area,omitempty"`
	Type        string   `json:"type,omitempty"`
	Address     string   `json:"address,omitempty"`
	City        string   `json:"city,omitempty"`
	PostalCode  string   `json:"postal_code,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// HTTPCollector scans one source through a JSON search endpoint:
//
//	GET {base}/api/search?city=...&min_price=...&max_price=...&page=...
//	  -> either {"listings":[...]} or [...]
//
// Pagination stops at the first empty page or maxPages.
type HTTPCollector struct {
	name      string
	baseURL   string
	client    *http.Client
	userAgent string
}

type HTTPCollectorOptions struct {
	Name      string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

const maxPages = 5

func NewHTTPCollector(opts HTTPCollectorOptions) (*HTTPCollector, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		return nil, errs.New("collector base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, errs.Wrap(err, "invalid collector base URL")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = "rental-hunter/1.0"
	}
	return &HTTPCollector{
		name:      opts.Name,
		baseURL:   strings.TrimRight(base, "/"),
		client:    &http.Client{Timeout: timeout},
		userAgent: ua,
	}, nil
}

func (c *HTTPCollector) Name() string { return c.name }

func (c *HTTPCollector) Collect(ctx context.Context, city string, criteria listing.Criteria) ([]listing.Raw, error) {
	out := make([]listing.Raw, 0, 32)
	for page := 1; page <= maxPages; page++ {
		hits, err := c.searchPage(ctx, city, criteria, page)
		if err != nil {
			return nil, err
		}
		if len(hits) == 0 {
			break
		}
		for _, hit := range hits {
			raw, ok := c.normalize(hit, city)
			if !ok {
				continue
			}
			out = append(out, raw)
		}
	}
	return out, nil
}

func (c *HTTPCollector) searchPage(ctx context.Context, city string, criteria listing.Criteria, page int) ([]rawPayload, error) {
	u, err := url.Parse(c.baseURL + "/api/search")
	if err != nil {
		return nil, errs.Wrap(err, "failed to build search URL")
	}
	q := u.Query()
	q.Set("city", city)
	q.Set("page", strconv.Itoa(page))
	if criteria.MinPrice > 0 {
		q.Set("min_price", strconv.Itoa(criteria.MinPrice))
	}
	if criteria.MaxPrice > 0 {
		q.Set("max_price", strconv.Itoa(criteria.MaxPrice))
	}
	if criteria.MinRooms > 0 {
		q.Set("min_rooms", strconv.Itoa(criteria.MinRooms))
	}
	if criteria.MaxRooms > 0 {
		q.Set("max_rooms", strconv.Itoa(criteria.MaxRooms))
	}
	if len(criteria.PropertyTypes) > 0 {
		q.Set("types", strings.Join(criteria.PropertyTypes, ","))
	}
	u.RawQuery = q.Encode()

	body, err := c.doGET(ctx, u.String())
	if err != nil {
		return nil, err
	}

	// Accept both bare-array and object-wrapped payloads.
	var arr []rawPayload
	if err := json.Unmarshal(body, &arr); err == nil {
		return arr, nil
	}
	var wrapped struct {
		Listings []rawPayload `json:"listings"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, errs.Wrap(err, "failed to parse search payload")
	}
	return wrapped.Listings, nil
}

func (c *HTTPCollector) doGET(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build search request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "search request failed")
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.New(fmt.Sprintf("search returned http status %d", resp.StatusCode))
	}
	return body, nil
}

func (c *HTTPCollector) normalize(hit rawPayload, city string) (listing.Raw, bool) {
	id := strings.TrimSpace(hit.ID)
	hitURL := strings.TrimSpace(hit.URL)
	if id == "" && hitURL == "" {
		return listing.Raw{}, false
	}
	if hitURL == "" {
		hitURL = c.baseURL + "/listings/" + url.PathEscape(id)
	}
	hitCity := strings.TrimSpace(hit.City)
	if hitCity == "" {
		hitCity = city
	}
	return listing.Raw{
		SourceSite:  c.name,
		SourceID:    id,
		URL:         hitURL,
		Title:       strings.TrimSpace(hit.Title),
		Description: strings.TrimSpace(hit.Description),
		PriceText:   strings.TrimSpace(hit.Price),
		RoomsText:   strings.TrimSpace(hit.Rooms),
		AreaText:    strings.TrimSpace(hit.Area),
		Type:        strings.TrimSpace(hit.Type),
		Address:     strings.TrimSpace(hit.Address),
		City:        hitCity,
		PostalCode:  strings.TrimSpace(hit.PostalCode),
		Features:    hit.Features,
	}, true
}

var _ shared.Collector = (*HTTPCollector)(nil)
