package validate

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxTitle       = 255
	MaxDescription = 2048
	MaxStatus      = 32
	MaxQuery       = 255
)

func text(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > max {
		return "", false
	}
	return s, true
}

// Title trims and enforces a non-empty title of at most MaxTitle characters.
func Title(s string) (string, bool) { return text(s, MaxTitle) }

func Description(s string) (string, bool) { return text(s, MaxDescription) }

// Status accepts any non-empty label up to MaxStatus characters; no fixed
// set of statuses is enforced.
func Status(s string) (string, bool) { return text(s, MaxStatus) }

// Query validates a free-text search term. The term is used verbatim;
// surrounding spaces are part of the substring being searched for.
func Query(s string) (string, bool) {
	if s == "" || utf8.RuneCountInString(s) > MaxQuery {
		return "", false
	}
	return s, true
}

// Amount reports whether a price or bid is a finite, strictly positive number.
func Amount(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// PartyID validates seller/buyer ids; 0 means unknown.
func PartyID(n int64) bool { return n >= 0 }

// UserID parses a non-negative integer id from a query string value.
func UserID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// PublicID validates the externally visible offer identifier.
func PublicID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
