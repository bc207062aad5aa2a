package catalog_test

import (
	"testing"

	"movienight/internal/catalog"
)

func TestBestThumbnailPriority(t *testing.T) {
	c := catalog.Candidate{Thumbnails: map[string]string{
		"default": "https://i.ytimg.com/d.jpg",
		"high":    "https://i.ytimg.com/h.jpg",
	}}
	if got := c.BestThumbnail(); got != "https://i.ytimg.com/h.jpg" {
		t.Fatalf("expected high variant, got %q", got)
	}
	c.Thumbnails["maxres"] = "https://i.ytimg.com/m.jpg"
	if got := c.BestThumbnail(); got != "https://i.ytimg.com/m.jpg" {
		t.Fatalf("expected maxres variant, got %q", got)
	}
	if got := (catalog.Candidate{}).BestThumbnail(); got != "" {
		t.Fatalf("expected empty thumbnail, got %q", got)
	}
}

func TestItemValidate(t *testing.T) {
	item := catalog.Item{
		Title:     "Paths of Glory",
		Year:      "1957",
		Leads:     []string{"Kirk Douglas", "Ralph Meeker"},
		PosterURL: "https://image.tmdb.org/t/p/w500/p.jpg",
		YouTubeID: "abcdefghijk",
	}
	item.Normalize()
	if err := item.Validate(); err != nil {
		t.Fatalf("expected valid item, got %v", err)
	}
	if item.Awards == nil {
		t.Fatal("expected Normalize to allocate awards")
	}

	bad := []catalog.Item{
		{Title: "", YouTubeID: "abcdefghijk"},
		{Title: "X", Year: "57", YouTubeID: "abcdefghijk"},
		{Title: "X", YouTubeID: "short"},
		{Title: "X", YouTubeID: "abcdefghijk", Leads: []string{"a", "b", "c"}},
	}
	for i, it := range bad {
		if err := it.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestPayloadValidate(t *testing.T) {
	p := catalog.Payload{
		Date:      "2026-10-14",
		Criteria:  "test",
		RowTitles: []string{"War"},
		Items:     []catalog.Item{{Title: "A", YouTubeID: "abcdefghijk", Leads: []string{}, Awards: []string{}}},
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
	p.Date = "14/10/2026"
	if err := p.Validate(); err == nil {
		t.Fatal("expected bad date to fail validation")
	}
}
