package enrichment

import (
	"context"
	"log/slog"
	"strings"

	"movienight/internal/catalog"
	"movienight/internal/logging"
	"movienight/internal/services"
	"movienight/internal/textutil"
	"movienight/internal/tmdb"
)

// AwardResolver maps an IMDb id to sorted award labels. Implementations
// degrade to an empty set rather than failing.
type AwardResolver interface {
	Resolve(ctx context.Context, imdbID string) []string
}

// MaxLeads bounds the number of billed cast names kept per item.
const MaxLeads = 2

// Enricher turns validated candidates into items using TMDB metadata and
// award lookups.
type Enricher struct {
	movies       tmdb.Searcher
	awards       AwardResolver
	imageBaseURL string
	logger       *slog.Logger
}

// New constructs an Enricher. A nil awards resolver yields empty award sets.
func New(movies tmdb.Searcher, awards AwardResolver, imageBaseURL string, logger *slog.Logger) *Enricher {
	return &Enricher{
		movies:       movies,
		awards:       awards,
		imageBaseURL: imageBaseURL,
		logger:       logging.NewComponentLogger(logger, "enrichment"),
	}
}

// Enrich resolves metadata for a candidate. Missing matches and fields
// degrade to empty values; only TMDB request failures are returned.
func (e *Enricher) Enrich(ctx context.Context, candidate catalog.Candidate) (catalog.Item, error) {
	item := catalog.Item{
		Title:     strings.TrimSpace(candidate.Title),
		YouTubeID: candidate.ID,
		Leads:     []string{},
		Awards:    []string{},
	}
	logger := logging.WithContext(ctx, e.logger).With(logging.String("youtube_id", candidate.ID))

	query := textutil.SanitizeSearchTitle(candidate.Title)
	details, err := e.lookup(ctx, query)
	if err != nil {
		return catalog.Item{}, err
	}

	if details == nil {
		attrs := logging.DecisionAttrs("metadata_match", "miss", "no search result")
		attrs = append(attrs, logging.String("search_title", query))
		logger.Debug("no metadata match", logging.Args(attrs...)...)
	} else {
		item.Year = releaseYear(details.ReleaseDate)
		item.Director = director(details.Credits.Crew)
		item.Leads = leads(details.Credits.Cast)
		item.PosterURL = tmdb.PosterURL(e.imageBaseURL, details.PosterPath)
		if e.awards != nil {
			item.Awards = e.awards.Resolve(ctx, strings.TrimSpace(details.ExternalIDs.IMDbID))
		}
		if title := strings.TrimSpace(details.Title); title != "" {
			item.Title = title
		}
		attrs := logging.DecisionAttrs("metadata_match", "hit", "first search result")
		attrs = append(attrs,
			logging.String("search_title", query),
			logging.Int64("tmdb_id", details.ID),
			logging.Int("award_count", len(item.Awards)),
		)
		logger.Debug("metadata matched", logging.Args(attrs...)...)
	}

	if item.PosterURL == "" {
		item.PosterURL = candidate.BestThumbnail()
	}
	item.Normalize()
	return item, nil
}

// lookup returns nil details when the query is empty or has no usable match.
func (e *Enricher) lookup(ctx context.Context, query string) (*tmdb.MovieDetails, error) {
	if query == "" || e.movies == nil {
		return nil, nil
	}
	resp, err := e.movies.SearchMovie(ctx, query)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalService, "enrichment", "search movie", query, err)
	}
	if resp == nil || len(resp.Results) == 0 || resp.Results[0].ID <= 0 {
		return nil, nil
	}
	details, err := e.movies.GetMovieDetails(ctx, resp.Results[0].ID)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalService, "enrichment", "movie details", query, err)
	}
	return details, nil
}

func releaseYear(date string) string {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return ""
	}
	year := date[:4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return year
}

func director(crew []tmdb.CrewMember) string {
	for _, member := range crew {
		if member.Job != "Director" {
			continue
		}
		if name := strings.TrimSpace(member.Name); name != "" {
			return name
		}
	}
	return ""
}

func leads(cast []tmdb.CastMember) []string {
	names := make([]string, 0, MaxLeads)
	for _, member := range cast {
		name := strings.TrimSpace(member.Name)
		if name == "" {
			continue
		}
		names = append(names, name)
		if len(names) == MaxLeads {
			break
		}
	}
	return names
}
