package listing

import (
	"strconv"
	"strings"
)

// Text-to-number helpers for collector output. Sources publish prices and
// surfaces as display strings; these extract comparable numbers and return
// ok=false when no usable number is present.

var roomLabels = map[string]int{
	"studio":   1,
	"t1":       1,
	"f1":       1,
	"1 pièce":  1,
	"t2":       2,
	"f2":       2,
	"2 pièces": 2,
	"t3":       3,
	"f3":       3,
	"3 pièces": 3,
	"t4":       4,
	"f4":       4,
	"4 pièces": 4,
	"t5":       5,
	"f5":       5,
	"5 pièces": 5,
}

func ParsePrice(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	cleaned := strings.NewReplacer(
		"€", "", "EUR", "", " ", "", " ", "",
		",", ".", "CC", "", "charges", "",
	).Replace(text)
	return parseFloat(cleaned)
}

func ParseArea(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	cleaned := strings.NewReplacer("m²", "", "m2", "", " ", "").Replace(text)
	return parseFloat(cleaned)
}

func ParseRooms(text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	lower := strings.ToLower(text)
	for label, n := range roomLabels {
		if strings.Contains(lower, label) {
			return n, true
		}
	}
	// Fall back to the first digit found.
	for _, r := range text {
		if r >= '1' && r <= '9' {
			return int(r - '0'), true
		}
	}
	return 0, false
}

func parseFloat(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
