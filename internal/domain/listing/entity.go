package listing

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingTitle  = errors.New("listing title is required")
	ErrMissingCity   = errors.New("listing city is required")
	ErrMissingURL    = errors.New("listing source url is required")
	ErrMissingSource = errors.New("listing source site is required")
	ErrInvalidPrice  = errors.New("listing price must be positive")
	ErrNotCanonical  = errors.New("duplicate reference must point at a canonical listing")
)

// Listing is one observed property advertisement. A listing whose
// duplicateOf field is nil is canonical; duplicates always reference a
// canonical record, never another duplicate.
type Listing struct {
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
	status          Status
	firstSeen       time.Time
	lastSeen        time.Time
	stillAvailable  bool
	duplicateOf     *uuid.UUID
	similarityScore *float64
}

// FromRaw normalizes collector output into a new canonical Listing.
func FromRaw(raw Raw, now time.Time) (*Listing, error) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return nil, ErrMissingTitle
	}
	city := strings.TrimSpace(raw.City)
	if city == "" {
		return nil, ErrMissingCity
	}
	if strings.TrimSpace(raw.URL) == "" {
		return nil, ErrMissingURL
	}
	if strings.TrimSpace(raw.SourceSite) == "" {
		return nil, ErrMissingSource
	}
	price, ok := ParsePrice(raw.PriceText)
	if !ok || price <= 0 {
		return nil, ErrInvalidPrice
	}

	l := &Listing{
		id:             uuid.New(),
		title:          title,
		description:    strings.TrimSpace(raw.Description),
		price:          price,
		propertyType:   strings.TrimSpace(raw.Type),
		address:        strings.TrimSpace(raw.Address),
		city:           city,
		postalCode:     strings.TrimSpace(raw.PostalCode),
		sourceSite:     raw.SourceSite,
		sourceURL:      strings.TrimSpace(raw.URL),
		sourceID:       raw.SourceID,
		features:       raw.Features,
		status:         StatusNew,
		firstSeen:      now,
		lastSeen:       now,
		stillAvailable: true,
	}
	if rooms, ok := ParseRooms(raw.RoomsText); ok {
		l.rooms = &rooms
	}
	if area, ok := ParseArea(raw.AreaText); ok {
		l.area = &area
	}
	return l, nil
}

func Reconstruct(
	id uuid.UUID,
	title, description string,
	price float64,
	rooms *int,
	area *float64,
	propertyType, address, city, postalCode string,
	sourceSite, sourceURL, sourceID string,
	features []string,
	status Status,
	firstSeen, lastSeen time.Time,
	stillAvailable bool,
	duplicateOf *uuid.UUID,
	similarityScore *float64,
) *Listing {
	return &Listing{
		id:              id,
		title:           title,
		description:     description,
		price:           price,
		rooms:           rooms,
		area:            area,
		propertyType:    propertyType,
		address:         address,
		city:            city,
		postalCode:      postalCode,
		sourceSite:      sourceSite,
		sourceURL:       sourceURL,
		sourceID:        sourceID,
		features:        features,
		status:          status,
		firstSeen:       firstSeen,
		lastSeen:        lastSeen,
		stillAvailable:  stillAvailable,
		duplicateOf:     duplicateOf,
		similarityScore: similarityScore,
	}
}

// MarkDuplicateOf records that this listing republishes canonical. The
// canonical listing must itself be canonical; chains are flattened by the
// caller before this is invoked.
func (l *Listing) MarkDuplicateOf(canonical *Listing, score float64) error {
	if !canonical.IsCanonical() {
		return ErrNotCanonical
	}
	id := canonical.id
	l.duplicateOf = &id
	l.similarityScore = &score
	l.status = StatusDuplicate
	return nil
}

// Refresh records a re-observation of the listing.
func (l *Listing) Refresh(now time.Time) {
	l.lastSeen = now
	l.stillAvailable = true
}

func (l *Listing) MarkUnavailable() {
	l.stillAvailable = false
	l.status = StatusUnavailable
}

func (l *Listing) MarkContacted() {
	if l.status == StatusNew {
		l.status = StatusContacted
	}
}

func (l *Listing) IsCanonical() bool {
	return l.duplicateOf == nil
}

func (l *Listing) ID() uuid.UUID             { return l.id }
func (l *Listing) Title() string             { return l.title }
func (l *Listing) Description() string       { return l.description }
func (l *Listing) Price() float64            { return l.price }
func (l *Listing) Rooms() *int               { return l.rooms }
func (l *Listing) Area() *float64            { return l.area }
func (l *Listing) PropertyType() string      { return l.propertyType }
func (l *Listing) Address() string           { return l.address }
func (l *Listing) City() string              { return l.city }
func (l *Listing) PostalCode() string        { return l.postalCode }
func (l *Listing) SourceSite() string        { return l.sourceSite }
func (l *Listing) SourceURL() string         { return l.sourceURL }
func (l *Listing) SourceID() string          { return l.sourceID }
func (l *Listing) Features() []string        { return l.features }
func (l *Listing) Status() Status            { return l.status }
func (l *Listing) FirstSeen() time.Time      { return l.firstSeen }
func (l *Listing) LastSeen() time.Time       { return l.lastSeen }
func (l *Listing) StillAvailable() bool      { return l.stillAvailable }
func (l *Listing) DuplicateOf() *uuid.UUID   { return l.duplicateOf }
func (l *Listing) SimilarityScore() *float64 { return l.similarityScore }
