package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultMinMinutes is the shortest runtime accepted as a feature film.
const DefaultMinMinutes = 75

// DefaultExcludePattern rejects titles containing the standalone word "documentary".
const DefaultExcludePattern = `(?i)\bdocumentary\b`

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Rejection describes why a candidate was refused. The zero value means accepted.
type Rejection string

const (
	RejectInvalidID     Rejection = "invalid_id"
	RejectEmptyTitle    Rejection = "empty_title"
	RejectExcludedTitle Rejection = "excluded_title"
	RejectTooShort      Rejection = "too_short"
)

// Validator applies the acceptance rules for search candidates.
type Validator struct {
	minMinutes int
	exclude    *regexp.Regexp
}

// NewValidator builds a validator. An empty pattern uses DefaultExcludePattern.
func NewValidator(minMinutes int, excludePattern string) (*Validator, error) {
	if minMinutes <= 0 {
		minMinutes = DefaultMinMinutes
	}
	if strings.TrimSpace(excludePattern) == "" {
		excludePattern = DefaultExcludePattern
	}
	re, err := regexp.Compile(excludePattern)
	if err != nil {
		return nil, fmt.Errorf("compile exclude pattern: %w", err)
	}
	return &Validator{minMinutes: minMinutes, exclude: re}, nil
}

// MinMinutes returns the runtime threshold in minutes.
func (v *Validator) MinMinutes() int {
	return v.minMinutes
}

// Check returns ("", true) when the candidate qualifies. Validation is
// all-or-nothing.
func (v *Validator) Check(c Candidate, minutes int) (Rejection, bool) {
	if !ValidID(c.ID) {
		return RejectInvalidID, false
	}
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return RejectEmptyTitle, false
	}
	if v.exclude.MatchString(title) {
		return RejectExcludedTitle, false
	}
	if minutes < v.minMinutes {
		return RejectTooShort, false
	}
	return "", true
}

// ValidID reports whether id is a well-formed 11-character video identifier.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}
