package metacache

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"movienight/internal/awards"
	"movienight/internal/logging"
	"movienight/internal/tmdb"
)

// Searcher serves TMDB lookups from the cache before asking next.
type Searcher struct {
	next   tmdb.Searcher
	store  *Store
	logger *slog.Logger
}

// NewSearcher wraps next with the cache.
func NewSearcher(next tmdb.Searcher, store *Store, logger *slog.Logger) *Searcher {
	return &Searcher{next: next, store: store, logger: logging.NewComponentLogger(logger, "metacache")}
}

// SearchMovie implements tmdb.Searcher.
func (s *Searcher) SearchMovie(ctx context.Context, query string) (*tmdb.Response, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	var cached tmdb.Response
	if lookup(ctx, s.store, s.logger, NamespaceTMDBSearch, key, &cached) {
		return &cached, nil
	}
	resp, err := s.next.SearchMovie(ctx, query)
	if err != nil {
		return nil, err
	}
	remember(ctx, s.store, s.logger, NamespaceTMDBSearch, key, resp)
	return resp, nil
}

// GetMovieDetails implements tmdb.Searcher.
func (s *Searcher) GetMovieDetails(ctx context.Context, movieID int64) (*tmdb.MovieDetails, error) {
	key := strconv.FormatInt(movieID, 10)
	var cached tmdb.MovieDetails
	if lookup(ctx, s.store, s.logger, NamespaceTMDBDetails, key, &cached) {
		return &cached, nil
	}
	details, err := s.next.GetMovieDetails(ctx, movieID)
	if err != nil {
		return nil, err
	}
	remember(ctx, s.store, s.logger, NamespaceTMDBDetails, key, details)
	return details, nil
}

// AwardSource serves award id lookups from the cache before asking next.
// Filtering against the allow-list happens downstream, so allow-list edits
// apply to cached entries too.
type AwardSource struct {
	next   awards.IDSource
	store  *Store
	logger *slog.Logger
}

// NewAwardSource wraps next with the cache.
func NewAwardSource(next awards.IDSource, store *Store, logger *slog.Logger) *AwardSource {
	return &AwardSource{next: next, store: store, logger: logging.NewComponentLogger(logger, "metacache")}
}

// AwardIDs implements awards.IDSource.
func (a *AwardSource) AwardIDs(ctx context.Context, imdbID string) ([]string, error) {
	key := strings.TrimSpace(imdbID)
	var cached []string
	if lookup(ctx, a.store, a.logger, NamespaceWikidataAwards, key, &cached) {
		return cached, nil
	}
	ids, err := a.next.AwardIDs(ctx, imdbID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	remember(ctx, a.store, a.logger, NamespaceWikidataAwards, key, ids)
	return ids, nil
}

// Cache faults never fail a lookup; they degrade to a miss.
func lookup(ctx context.Context, s *Store, logger *slog.Logger, namespace, key string, out any) bool {
	if s == nil || key == "" {
		return false
	}
	hit, err := s.Get(ctx, namespace, key, out)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, logger), "cache read failed", "cache_read_failed",
			logging.String("namespace", namespace),
			logging.Error(err),
			logging.String(logging.FieldImpact, "lookup served from upstream"),
		)
		return false
	}
	if hit {
		logger.Debug("cache hit", logging.String("namespace", namespace), logging.String("key", key))
	}
	return hit
}

func remember(ctx context.Context, s *Store, logger *slog.Logger, namespace, key string, value any) {
	if s == nil || key == "" {
		return
	}
	if err := s.Put(ctx, namespace, key, value); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, logger), "cache write failed", "cache_write_failed",
			logging.String("namespace", namespace),
			logging.Error(err),
			logging.String(logging.FieldImpact, "next run repeats this lookup"),
		)
	}
}
