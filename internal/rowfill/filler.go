package rowfill

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"

	"movienight/internal/catalog"
	"movienight/internal/logging"
	"movienight/internal/services"
	"movienight/internal/textutil"
	"movienight/internal/youtube"
)

const (
	// DefaultTarget is the number of items a complete row holds.
	DefaultTarget = 4
	// DefaultPageSize is the number of results requested per search page.
	DefaultPageSize = 25
	// DefaultMaxPages bounds pagination per query term.
	DefaultMaxPages = 4
	// DefaultPageInterval is the pause between consecutive search pages.
	DefaultPageInterval = 200 * time.Millisecond
)

// Enricher converts a validated candidate into an output item.
type Enricher interface {
	Enrich(ctx context.Context, candidate catalog.Candidate) (catalog.Item, error)
}

// RowSpec describes one row to fill.
type RowSpec struct {
	Name    string
	Order   youtube.Order
	Queries []string
}

// Filler accepts search candidates into rows until each holds its target count.
type Filler struct {
	source     youtube.Source
	validator  *catalog.Validator
	enricher   Enricher
	target     int
	pageSize   int
	maxPages   int
	batchLimit int
	shuffle    func([]string)
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Filler.
type Option func(*Filler)

// WithTarget overrides the per-row item count.
func WithTarget(n int) Option {
	return func(f *Filler) {
		if n > 0 {
			f.target = n
		}
	}
}

// WithPageSize overrides the results requested per search page.
func WithPageSize(n int) Option {
	return func(f *Filler) {
		if n > 0 && n <= youtube.MaxPageSize {
			f.pageSize = n
		}
	}
}

// WithMaxPages overrides the pagination budget per query term.
func WithMaxPages(n int) Option {
	return func(f *Filler) {
		if n > 0 {
			f.maxPages = n
		}
	}
}

// WithBatchLimit caps the ids sent in one batch detail request.
func WithBatchLimit(n int) Option {
	return func(f *Filler) {
		if n > 0 && n <= youtube.MaxBatchIDs {
			f.batchLimit = n
		}
	}
}

// WithShuffle replaces the query rotation shuffle. Tests pass a no-op.
func WithShuffle(shuffle func([]string)) Option {
	return func(f *Filler) {
		if shuffle != nil {
			f.shuffle = shuffle
		}
	}
}

// WithPageInterval sets the pause between search pages. Zero disables it.
func WithPageInterval(d time.Duration) Option {
	return func(f *Filler) {
		if d <= 0 {
			f.limiter = nil
			return
		}
		f.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Filler) {
		f.logger = logging.NewComponentLogger(logger, "rowfill")
	}
}

// New constructs a Filler.
func New(source youtube.Source, validator *catalog.Validator, enricher Enricher, opts ...Option) *Filler {
	f := &Filler{
		source:     source,
		validator:  validator,
		enricher:   enricher,
		target:     DefaultTarget,
		pageSize:   DefaultPageSize,
		maxPages:   DefaultMaxPages,
		batchLimit: youtube.MaxBatchIDs,
		shuffle:    shuffleStrings,
		limiter:    rate.NewLimiter(rate.Every(DefaultPageInterval), 1),
		logger:     logging.NewComponentLogger(nil, "rowfill"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Target returns the per-row item count.
func (f *Filler) Target() int {
	return f.target
}

// Fill rotates through the row's shuffled query pool, paginating each term,
// until the row holds Target items or the budget is spent. A short result is
// not an error.
func (f *Filler) Fill(ctx context.Context, row RowSpec, seen *catalog.SeenSet) ([]catalog.Item, error) {
	ctx = services.WithRow(ctx, row.Name)
	items := make([]catalog.Item, 0, f.target)

	queries := append([]string(nil), row.Queries...)
	f.shuffle(queries)

	for _, query := range queries {
		qctx := services.WithQuery(ctx, query)
		token := ""
		for page := 0; page < f.maxPages; page++ {
			resp, err := f.search(qctx, row.Order, query, token)
			if err != nil {
				return items, err
			}
			var done bool
			items, done, err = f.acceptPage(qctx, resp, seen, items)
			if err != nil {
				return items, err
			}
			if done {
				f.logRow(ctx, items)
				return items, nil
			}
			token = resp.NextPageToken
			if token == "" {
				break
			}
		}
	}

	f.logRow(ctx, items)
	return items, nil
}

func (f *Filler) logRow(ctx context.Context, items []catalog.Item) {
	logging.WithContext(ctx, f.logger).Info("row pass complete",
		logging.Int("accepted", len(items)),
		logging.Int("target", f.target),
	)
}

// Fallback tops up a short row from a generic query pool, one page per query
// in the given order, appending to items.
func (f *Filler) Fallback(ctx context.Context, row RowSpec, queries []string, seen *catalog.SeenSet, items []catalog.Item) ([]catalog.Item, error) {
	ctx = services.WithRow(ctx, row.Name)
	logger := logging.WithContext(ctx, f.logger)
	logger.Info("row short, using fallback queries",
		logging.Int("accepted", len(items)),
		logging.Int("target", f.target),
	)

	for _, query := range queries {
		if len(items) >= f.target {
			break
		}
		qctx := services.WithQuery(ctx, query)
		resp, err := f.search(qctx, row.Order, query, "")
		if err != nil {
			return items, err
		}
		var done bool
		items, done, err = f.acceptPage(qctx, resp, seen, items)
		if err != nil || done {
			return items, err
		}
	}
	return items, nil
}

func (f *Filler) search(ctx context.Context, order youtube.Order, query, token string) (*youtube.SearchPage, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	resp, err := f.source.Search(ctx, youtube.SearchRequest{
		Query:      query,
		Order:      order,
		PageToken:  token,
		MaxResults: f.pageSize,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrExternalService, "rowfill", "search", query, err)
	}
	if resp == nil {
		resp = &youtube.SearchPage{}
	}
	return resp, nil
}

// acceptPage runs one page of search results through validation and
// enrichment. done reports that the row reached its target.
func (f *Filler) acceptPage(ctx context.Context, page *youtube.SearchPage, seen *catalog.SeenSet, items []catalog.Item) ([]catalog.Item, bool, error) {
	ids := f.freshIDs(page.VideoIDs(), seen)
	logger := logging.WithContext(ctx, f.logger)
	if len(ids) == 0 {
		logger.Debug("page yielded no new ids")
		return items, false, nil
	}

	videos, err := f.source.Videos(ctx, ids)
	if err != nil {
		return items, false, services.Wrap(services.ErrExternalService, "rowfill", "videos", "batch detail lookup", err)
	}

	for _, video := range videos {
		candidate := video.Candidate()
		if seen.Has(candidate.ID) {
			continue
		}
		minutes := textutil.DurationMinutes(candidate.Duration)
		if reason, ok := f.validator.Check(candidate, minutes); !ok {
			attrs := logging.DecisionAttrs("candidate_filter", "rejected", string(reason))
			attrs = append(attrs,
				logging.String("youtube_id", candidate.ID),
				logging.String("title", candidate.Title),
				logging.Int("minutes", minutes),
			)
			logger.Debug("candidate rejected", logging.Args(attrs...)...)
			continue
		}
		if !seen.Claim(candidate.ID) {
			continue
		}
		item, err := f.enricher.Enrich(ctx, candidate)
		if err != nil {
			return items, false, err
		}
		items = append(items, item)
		logger.Debug("candidate accepted",
			logging.String("youtube_id", item.YouTubeID),
			logging.String("title", item.Title),
			logging.Int("minutes", minutes),
		)
		if len(items) >= f.target {
			return items, true, nil
		}
	}
	return items, false, nil
}

// freshIDs keeps unseen ids in order, dropping repeats within the page, and
// caps the batch.
func (f *Filler) freshIDs(ids []string, seen *catalog.SeenSet) []string {
	out := make([]string, 0, len(ids))
	local := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if seen.Has(id) {
			continue
		}
		if _, dup := local[id]; dup {
			continue
		}
		local[id] = struct{}{}
		out = append(out, id)
		if len(out) == f.batchLimit {
			break
		}
	}
	return out
}

func shuffleStrings(values []string) {
	rand.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
}
