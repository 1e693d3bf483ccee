package listing

import "math"

// Gates controlling which of the secondary rules run. The exact-spec rule
// activates at a looser address gate than the description rule; kept as the
// tuned values are, pending review of whether the asymmetry is intentional.
const (
	descriptionGate = 0.6
	specGate        = 0.4

	areaTolerance = 0.1 // fraction of the existing listing's area
)

// Thresholds are the tunable decision-policy constants.
type Thresholds struct {
	Address     float64
	Description float64
	PriceBand   float64
}

// Scorer computes string similarity. Swappable so the decision policy can
// be tested against synthetic scores.
type Scorer interface {
	Address(a, b string) float64
	Description(a, b string) float64
}

type levenshteinScorer struct{}

func (levenshteinScorer) Address(a, b string) float64     { return AddressSimilarity(a, b) }
func (levenshteinScorer) Description(a, b string) float64 { return DescriptionSimilarity(a, b) }

// Verdict is the classification outcome for one candidate listing.
type Verdict struct {
	Duplicate bool
	Canonical *Listing
	Score     float64
}

func Distinct() Verdict {
	return Verdict{}
}

func DuplicateOf(canonical *Listing, score float64) Verdict {
	return Verdict{Duplicate: true, Canonical: canonical, Score: score}
}

// Classifier decides whether a newly observed listing republishes one of a
// set of already-tracked canonical listings.
type Classifier struct {
	scorer     Scorer
	thresholds Thresholds
}

func NewClassifier(thresholds Thresholds) *Classifier {
	return &Classifier{scorer: levenshteinScorer{}, thresholds: thresholds}
}

func NewClassifierWithScorer(scorer Scorer, thresholds Thresholds) *Classifier {
	return &Classifier{scorer: scorer, thresholds: thresholds}
}

// Classify evaluates the decision policy against each candidate in order and
// short-circuits on the first match. The candidate set must already be
// filtered to the same city, the price band, and available canonical
// listings only.
//
// A candidate with no usable price or city gives the engine no comparison
// base; that is insufficient evidence, not an error, and classifies as
// distinct.
func (c *Classifier) Classify(cand *Listing, existing []*Listing) Verdict {
	if cand.Price() <= 0 || cand.City() == "" {
		return Distinct()
	}
	for _, ex := range existing {
		if verdict, ok := c.compare(cand, ex); ok {
			return verdict
		}
	}
	return Distinct()
}

func (c *Classifier) compare(cand, ex *Listing) (Verdict, bool) {
	addrScore := c.scorer.Address(cand.Address(), ex.Address())

	// 1. Address match
	if addrScore > c.thresholds.Address {
		return DuplicateOf(ex, addrScore), true
	}

	// 2. Description match, only when the addresses are at least loosely
	// similar. Titles stand in for absent descriptions.
	if addrScore > descriptionGate {
		descScore := c.scorer.Description(textOrTitle(cand), textOrTitle(ex))
		if descScore > c.thresholds.Description {
			return DuplicateOf(ex, descScore), true
		}
	}

	// 3. Exact-specification fallback for listings with degraded free text.
	if addrScore > specGate && c.specsMatch(cand, ex) {
		return DuplicateOf(ex, addrScore), true
	}

	return Verdict{}, false
}

// specsMatch compares price, rooms and area. Every known pair must agree;
// unknown fields never disqualify.
func (c *Classifier) specsMatch(cand, ex *Listing) bool {
	if cand.Price() > 0 && ex.Price() > 0 {
		if math.Abs(cand.Price()-ex.Price()) > c.thresholds.PriceBand {
			return false
		}
	}
	if cand.Rooms() != nil && ex.Rooms() != nil {
		if *cand.Rooms() != *ex.Rooms() {
			return false
		}
	}
	if cand.Area() != nil && ex.Area() != nil {
		if math.Abs(*cand.Area()-*ex.Area()) > *ex.Area()*areaTolerance {
			return false
		}
	}
	return true
}

func textOrTitle(l *Listing) string {
	if l.Description() != "" {
		return l.Description()
	}
	return l.Title()
}
