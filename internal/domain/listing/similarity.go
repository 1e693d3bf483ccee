package listing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// Street-type words collapsed to the abbreviations agencies themselves use,
// so "12 rue de Rivoli" and "12 r Rivoli" normalize close together.
var streetAbbreviations = [][2]string{
	{"boulevard", "bd"},
	{"avenue", "av"},
	{"impasse", "imp"},
	{"passage", "pass"},
	{"place", "pl"},
	{"square", "sq"},
	{"allée", "all"},
	{"quai", "q"},
	{"rue", "r"},
}

// Filler real-estate vocabulary that says nothing about which property an
// ad describes.
var descriptionFiller = []string{
	"appartement", "logement", "location", "louer", "disponible",
	"immédiatement", "libre", "contact", "visite", "dossier",
}

var (
	cityNamePattern   = regexp.MustCompile(`\b(paris|lyon|marseille|france)\b`)
	postalCodePattern = regexp.MustCompile(`\b\d{5}\b`)
	nonWordPattern    = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	spacePattern      = regexp.MustCompile(`\s+`)
	numberPattern     = regexp.MustCompile(`\d+`)
)

const (
	streetNumberBonus = 0.1
	sharedWordBonus   = 0.1
	sharedWordCap     = 0.3
)

// NormalizeAddress lowercases, strips city names, postal codes and
// punctuation, and collapses street types to canonical abbreviations.
func NormalizeAddress(address string) string {
	if address == "" {
		return ""
	}
	norm := strings.ToLower(strings.TrimSpace(address))
	for _, repl := range streetAbbreviations {
		norm = strings.ReplaceAll(norm, repl[0], repl[1])
	}
	norm = cityNamePattern.ReplaceAllString(norm, "")
	norm = postalCodePattern.ReplaceAllString(norm, "")
	norm = nonWordPattern.ReplaceAllString(norm, " ")
	return strings.TrimSpace(spacePattern.ReplaceAllString(norm, " "))
}

// NormalizeDescription lowercases and strips filler vocabulary and
// punctuation.
func NormalizeDescription(description string) string {
	if description == "" {
		return ""
	}
	norm := strings.ToLower(strings.TrimSpace(description))
	for _, filler := range descriptionFiller {
		norm = strings.ReplaceAll(norm, filler, " ")
	}
	norm = nonWordPattern.ReplaceAllString(norm, " ")
	return strings.TrimSpace(spacePattern.ReplaceAllString(norm, " "))
}

// AddressSimilarity scores two addresses in [0,1]. The base score is a
// normalized edit-distance ratio over the normalized forms; a flat bonus is
// added when both share a street number and a capped bonus proportional to
// the shared-word count.
func AddressSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	na := NormalizeAddress(a)
	nb := NormalizeAddress(b)
	if na == "" || nb == "" {
		return 0
	}

	score := levenshtein.Similarity(na, nb, nil)

	numsA := tokenSet(numberPattern.FindAllString(na, -1))
	numsB := tokenSet(numberPattern.FindAllString(nb, -1))
	if intersects(numsA, numsB) {
		score += streetNumberBonus
	}

	wordsA := tokenSet(strings.Fields(na))
	wordsB := tokenSet(strings.Fields(nb))
	shared := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			shared++
		}
	}
	if shared > 0 {
		bonus := float64(shared) * sharedWordBonus
		if bonus > sharedWordCap {
			bonus = sharedWordCap
		}
		score += bonus
	}

	if score > 1 {
		score = 1
	}
	return score
}

// DescriptionSimilarity scores two free-text descriptions in [0,1],
// insensitive to token order (the token-sort ratio technique).
func DescriptionSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	na := sortTokens(NormalizeDescription(a))
	nb := sortTokens(NormalizeDescription(b))
	if na == "" || nb == "" {
		return 0
	}
	return levenshtein.Similarity(na, nb, nil)
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func intersects(a, b map[string]struct{}) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}
