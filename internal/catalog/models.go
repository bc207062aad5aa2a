package catalog

import (
	"github.com/go-playground/validator/v10"
)

// ThumbnailPriority lists thumbnail variants from highest to lowest resolution.
var ThumbnailPriority = []string{"maxres", "standard", "high", "medium", "default"}

// Candidate is an unvalidated video returned by the search stage.
type Candidate struct {
	ID          string
	Title       string
	Duration    string
	Thumbnails  map[string]string
	PublishedAt string
	ViewCount   int64
}

// BestThumbnail returns the highest-resolution thumbnail URL available.
func (c Candidate) BestThumbnail() string {
	for _, variant := range ThumbnailPriority {
		if url := c.Thumbnails[variant]; url != "" {
			return url
		}
	}
	return ""
}

// Item is an accepted, enriched film ready for output.
type Item struct {
	Title     string   `json:"title" validate:"required"`
	Year      string   `json:"year" validate:"omitempty,len=4,numeric"`
	Director  string   `json:"director"`
	Leads     []string `json:"leads" validate:"max=2,dive,required"`
	PosterURL string   `json:"posterUrl" validate:"omitempty,url"`
	YouTubeID string   `json:"youtubeId" validate:"len=11"`
	Awards    []string `json:"awards" validate:"dive,required"`
}

// Row is a named bucket of items filled with its own query pool and order.
type Row struct {
	Name  string
	Order string
	Items []Item
}

// Payload is the artifact produced by a successful run.
type Payload struct {
	Date      string   `json:"date" validate:"datetime=2006-01-02"`
	Criteria  string   `json:"criteria"`
	RowTitles []string `json:"row_titles" validate:"min=1,dive,required"`
	Items     []Item   `json:"items" validate:"dive"`
}

var validate = validator.New()

// Validate checks the structural invariants of an item.
func (i *Item) Validate() error {
	return validate.Struct(i)
}

// Validate checks the payload and every item it carries.
func (p *Payload) Validate() error {
	return validate.Struct(p)
}

// Normalize replaces nil slices with empty ones so the JSON output always
// carries arrays.
func (i *Item) Normalize() {
	if i.Leads == nil {
		i.Leads = []string{}
	}
	if i.Awards == nil {
		i.Awards = []string{}
	}
}
