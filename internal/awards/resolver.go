package awards

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"movienight/internal/logging"
)

// DefaultAllowList maps Wikidata award entities to display labels. Only
// film-level Academy Award and Golden Globe wins are recognized.
var DefaultAllowList = map[string]string{
	"Q103360":  "Oscar Best Picture",
	"Q106291":  "Oscar Best Director",
	"Q1033603": "Oscar Best Original Screenplay",
	"Q1033604": "Oscar Best Adapted Screenplay",
	"Q106301":  "Golden Globe Best Motion Picture (Drama)",
	"Q106295":  "Golden Globe Best Motion Picture (Musical/Comedy)",
	"Q106296":  "Golden Globe Best Director",
	"Q106297":  "Golden Globe Best Screenplay",
}

// IDSource returns the award entity ids recorded for a film.
type IDSource interface {
	AwardIDs(ctx context.Context, imdbID string) ([]string, error)
}

// Resolver turns a film identifier into recognized award labels.
type Resolver struct {
	source IDSource
	allow  map[string]string
	logger *slog.Logger
}

// NewResolver builds a resolver. A nil or empty allow list uses DefaultAllowList.
func NewResolver(source IDSource, allow map[string]string, logger *slog.Logger) *Resolver {
	if len(allow) == 0 {
		allow = DefaultAllowList
	}
	copied := make(map[string]string, len(allow))
	for id, label := range allow {
		copied[strings.TrimSpace(id)] = strings.TrimSpace(label)
	}
	return &Resolver{
		source: source,
		allow:  copied,
		logger: logging.NewComponentLogger(logger, "awards"),
	}
}

// Resolve returns the sorted, deduplicated labels of allow-listed awards for
// the film. Lookup failures degrade to an empty result and are never returned.
func (r *Resolver) Resolve(ctx context.Context, imdbID string) []string {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" || r.source == nil {
		return []string{}
	}
	ids, err := r.source.AwardIDs(ctx, imdbID)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, r.logger), "award lookup failed", "award_lookup_failed",
			logging.String("imdb_id", imdbID),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "wikidata may be rate limiting; no action needed"),
			logging.String(logging.FieldImpact, "item published without award badges"))
		return []string{}
	}
	return r.Labels(ids)
}

// Labels filters ids through the allow list and returns sorted unique labels.
func (r *Resolver) Labels(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		label, ok := r.allow[strings.TrimSpace(id)]
		if !ok || label == "" {
			continue
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
