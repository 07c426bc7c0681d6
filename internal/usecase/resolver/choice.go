package resolver

import (
	"fmt"
	"strings"
	"unicode"
)

// MatchMode controls how option text is compared with a desired value.
type MatchMode string

const (
	// MatchWord accepts whole-word containment in either direction.
	MatchWord MatchMode = "word"
	// MatchExact requires equal normalized text.
	MatchExact MatchMode = "exact"
	// MatchSubstring accepts raw substring containment in either direction,
	// so "No" also matches "Nowhere".
	MatchSubstring MatchMode = "substring"
)

func ParseMatchMode(s string) (MatchMode, error) {
	switch m := MatchMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MatchWord, nil
	case MatchWord, MatchExact, MatchSubstring:
		return m, nil
	default:
		return "", fmt.Errorf("unknown choice match mode %q", s)
	}
}

// Matches reports whether option text satisfies target under mode. Empty
// strings never match.
func Matches(option, target string, mode MatchMode) bool {
	switch mode {
	case MatchExact:
		o, t := tokens(option), tokens(target)
		return len(o) > 0 && equalTokens(o, t)
	case MatchSubstring:
		o := strings.ToLower(strings.TrimSpace(option))
		t := strings.ToLower(strings.TrimSpace(target))
		if o == "" || t == "" {
			return false
		}
		return strings.Contains(o, t) || strings.Contains(t, o)
	default:
		o, t := tokens(option), tokens(target)
		if len(o) == 0 || len(t) == 0 {
			return false
		}
		return containsRun(o, t) || containsRun(t, o)
	}
}

func tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// containsRun reports whether needle occurs in hay as a contiguous run.
func containsRun(hay, needle []string) bool {
	for i := 0; i+len(needle) <= len(hay); i++ {
		if equalTokens(hay[i:i+len(needle)], needle) {
			return true
		}
	}
	return false
}

// Synonyms expands a boolean-like answer into the values a choice control
// may render it as.
func Synonyms(value string) []string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true":
		return []string{"Yes", "True"}
	case "no", "false":
		return []string{"No", "False"}
	default:
		return []string{value}
	}
}
