package listing

type Status string

const (
	StatusNew         Status = "new"
	StatusContacted   Status = "contacted"
	StatusResponded   Status = "responded"
	StatusUnavailable Status = "unavailable"
	StatusDuplicate   Status = "duplicate"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusResponded, StatusUnavailable, StatusDuplicate:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// Raw is a listing as produced by a source collector, before normalization.
// Numeric fields are free text because collectors hand over whatever the
// source page contained ("920 € CC", "T2", "45 m²").
type Raw struct {
	SourceSite  string
	SourceID    string
	URL         string
	Title       string
	Description string
	PriceText   string
	RoomsText   string
	AreaText    string
	Type        string
	Address     string
	City        string
	PostalCode  string
	Features    []string
}

// Criteria narrows a collector search. Mirrors the configurable default
// search criteria.
type Criteria struct {
	MinPrice        int
	MaxPrice        int
	MinRooms        int
	MaxRooms        int
	PropertyTypes   []string
	Keywords        []string
	ExcludeKeywords []string
}
