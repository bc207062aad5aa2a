package catalog_test

import (
	"testing"

	"movienight/internal/catalog"
)

func newValidator(t *testing.T) *catalog.Validator {
	t.Helper()
	v, err := catalog.NewValidator(catalog.DefaultMinMinutes, "")
	if err != nil {
		t.Fatalf("NewValidator returned error: %v", err)
	}
	return v
}

func TestValidatorDurationThreshold(t *testing.T) {
	v := newValidator(t)
	c := catalog.Candidate{ID: "abcdefghijk", Title: "Long Road Home"}

	if reason, ok := v.Check(c, 74); ok || reason != catalog.RejectTooShort {
		t.Fatalf("expected 74 minutes to be rejected as too short, got %q %v", reason, ok)
	}
	if reason, ok := v.Check(c, 75); !ok {
		t.Fatalf("expected 75 minutes to be accepted, got %q", reason)
	}
}

func TestValidatorRejectsDocumentary(t *testing.T) {
	v := newValidator(t)
	for _, title := range []string{"The War Documentary", "DOCUMENTARY: Normandy", "a documentary film"} {
		c := catalog.Candidate{ID: "abcdefghijk", Title: title}
		if reason, ok := v.Check(c, 200); ok || reason != catalog.RejectExcludedTitle {
			t.Fatalf("expected %q to be excluded, got %q %v", title, reason, ok)
		}
	}
	c := catalog.Candidate{ID: "abcdefghijk", Title: "Docudrama Nights"}
	if _, ok := v.Check(c, 200); !ok {
		t.Fatal("expected partial-word match to be accepted")
	}
}

func TestValidatorRejectsMalformedInput(t *testing.T) {
	v := newValidator(t)
	tests := []struct {
		name string
		c    catalog.Candidate
		want catalog.Rejection
	}{
		{"short id", catalog.Candidate{ID: "abc", Title: "Film"}, catalog.RejectInvalidID},
		{"long id", catalog.Candidate{ID: "abcdefghijkl", Title: "Film"}, catalog.RejectInvalidID},
		{"bad charset", catalog.Candidate{ID: "abcdefghij!", Title: "Film"}, catalog.RejectInvalidID},
		{"blank title", catalog.Candidate{ID: "abc-efg_ijk", Title: "   "}, catalog.RejectEmptyTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, ok := v.Check(tt.c, 120)
			if ok || reason != tt.want {
				t.Fatalf("Check() = %q %v, want %q", reason, ok, tt.want)
			}
		})
	}
}

func TestNewValidatorBadPattern(t *testing.T) {
	if _, err := catalog.NewValidator(75, "("); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestValidID(t *testing.T) {
	if !catalog.ValidID("dQw4w9WgXcQ") {
		t.Fatal("expected well-formed id to be valid")
	}
	if catalog.ValidID("") {
		t.Fatal("expected empty id to be invalid")
	}
}
