package condition

import (
	"encoding/json"
	"strings"
)

// Operation is the formula branch an operation label selects.
type Operation int

const (
	Other    Operation = iota // turning, grooving, anything unclassified
	Drilling                  // perçage
	Boring                    // alésage
)

var (
	drillingKeywords = []string{"perçage", "percage", "drilling"}
	boringKeywords   = []string{"alésage", "alesage", "boring"}
)

// Classify maps a free-text operation label onto a branch by case-insensitive
// substring match. Drilling wins over boring when both match.
func Classify(label string) Operation {
	l := strings.ToLower(label)
	switch {
	case containsAny(l, drillingKeywords):
		return Drilling
	case containsAny(l, boringKeywords):
		return Boring
	default:
		return Other
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func (o Operation) String() string {
	switch o {
	case Drilling:
		return "drilling"
	case Boring:
		return "boring"
	default:
		return "other"
	}
}

func (o Operation) MarshalJSON() ([]byte, error) { return json.Marshal(o.String()) }
