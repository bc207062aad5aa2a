package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"movienight/internal/awards"
	"movienight/internal/catalog"
	"movienight/internal/config"
	"movienight/internal/enrichment"
	"movienight/internal/logging"
	"movienight/internal/metacache"
	"movienight/internal/rowfill"
	"movienight/internal/services"
	"movienight/internal/tmdb"
	"movienight/internal/wikidata"
	"movienight/internal/youtube"
)

// buildFiller wires the upstream clients into a row filler. The returned
// cleanup closes the lookup cache when one is open.
func buildFiller(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*rowfill.Filler, func(), error) {
	httpClient := &http.Client{Timeout: time.Duration(cfg.YouTube.RequestTimeout) * time.Second}

	yt, err := youtube.New(cfg.YouTube.APIKey, cfg.YouTube.BaseURL,
		youtube.WithHTTPClient(httpClient),
		youtube.WithDurationClass(cfg.YouTube.DurationClass),
		youtube.WithSafeSearch(cfg.YouTube.SafeSearch),
	)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrConfiguration, "youtube", "init", "", err)
	}
	movies, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithHTTPClient(httpClient),
		tmdb.WithIncludeAdult(cfg.TMDB.IncludeAdult),
	)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrConfiguration, "tmdb", "init", "", err)
	}
	graph := wikidata.New(cfg.Wikidata.Endpoint, cfg.Wikidata.UserAgent, wikidata.WithHTTPClient(httpClient))

	var (
		searcher tmdb.Searcher   = movies
		awardIDs awards.IDSource = graph
		cleanup                  = func() {}
	)
	if cfg.Cache.Enabled {
		store, err := metacache.Open(cfg.Cache.Path, time.Duration(cfg.Cache.TTLHours)*time.Hour)
		if err != nil {
			logging.WarnWithContext(logging.WithContext(ctx, logger), "lookup cache unavailable", "cache_open_failed",
				logging.String("path", cfg.Cache.Path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check cache.path permissions or disable the cache"),
				logging.String(logging.FieldImpact, "all lookups go upstream this run"),
			)
		} else {
			if removed, err := store.Prune(ctx); err == nil && removed > 0 {
				logger.Debug("pruned expired cache entries", logging.Int64("removed", removed))
			}
			searcher = metacache.NewSearcher(movies, store, logger)
			awardIDs = metacache.NewAwardSource(graph, store, logger)
			cleanup = func() { _ = store.Close() }
		}
	}

	validator, err := catalog.NewValidator(cfg.Curation.MinMinutes, cfg.Curation.ExcludePattern)
	if err != nil {
		cleanup()
		return nil, nil, services.Wrap(services.ErrConfiguration, "catalog", "validator", "", err)
	}
	resolver := awards.NewResolver(awardIDs, cfg.Curation.Awards, logger)
	enricher := enrichment.New(searcher, resolver, cfg.TMDB.ImageBaseURL, logger)

	filler := rowfill.New(yt, validator, enricher,
		rowfill.WithTarget(cfg.Curation.RowSize),
		rowfill.WithPageSize(cfg.YouTube.PageSize),
		rowfill.WithMaxPages(cfg.YouTube.MaxPages),
		rowfill.WithBatchLimit(cfg.Curation.BatchLimit),
		rowfill.WithPageInterval(time.Duration(cfg.Curation.PagePauseMS)*time.Millisecond),
		rowfill.WithLogger(logger),
	)
	return filler, cleanup, nil
}
