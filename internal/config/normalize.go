package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeYouTube()
	c.normalizeTMDB()
	c.normalizeWikidata()
	c.normalizeCuration()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	if err := c.normalizeCache(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeYouTube() {
	if strings.TrimSpace(c.YouTube.APIKey) == "" {
		if value, ok := os.LookupEnv("YOUTUBE_API_KEY"); ok {
			c.YouTube.APIKey = value
		}
	}
	c.YouTube.APIKey = strings.TrimSpace(c.YouTube.APIKey)
	c.YouTube.BaseURL = strings.TrimRight(strings.TrimSpace(c.YouTube.BaseURL), "/")
	if c.YouTube.BaseURL == "" {
		c.YouTube.BaseURL = defaultYouTubeBaseURL
	}
	c.YouTube.DurationClass = strings.TrimSpace(c.YouTube.DurationClass)
	c.YouTube.SafeSearch = strings.TrimSpace(c.YouTube.SafeSearch)
	if c.YouTube.RequestTimeout <= 0 {
		c.YouTube.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeTMDB() {
	if strings.TrimSpace(c.TMDB.APIKey) == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = value
		}
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.ImageBaseURL), "/")
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = defaultTMDBImageBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
}

func (c *Config) normalizeWikidata() {
	c.Wikidata.Endpoint = strings.TrimSpace(c.Wikidata.Endpoint)
	if c.Wikidata.Endpoint == "" {
		c.Wikidata.Endpoint = defaultWikidataEndpoint
	}
	c.Wikidata.UserAgent = strings.TrimSpace(c.Wikidata.UserAgent)
	if c.Wikidata.UserAgent == "" {
		c.Wikidata.UserAgent = defaultWikidataUserAgent
	}
}

func (c *Config) normalizeCuration() {
	c.Curation.Criteria = strings.TrimSpace(c.Curation.Criteria)
	if c.Curation.Criteria == "" {
		c.Curation.Criteria = defaultCriteria
	}
	if strings.TrimSpace(c.Curation.ExcludePattern) == "" {
		c.Curation.ExcludePattern = defaultExcludePattern
	}
	if c.Curation.PagePauseMS < 0 {
		c.Curation.PagePauseMS = 0
	}
	if len(c.Curation.Rows) == 0 {
		c.Curation.Rows = defaultRows()
	}
	for i := range c.Curation.Rows {
		row := &c.Curation.Rows[i]
		row.Name = strings.TrimSpace(row.Name)
		row.Order = strings.TrimSpace(row.Order)
		if row.Order == "" {
			row.Order = DefaultOrderFor(row.Name)
		}
		row.Queries = trimQueries(row.Queries)
	}
	c.Curation.FallbackQueries = trimQueries(c.Curation.FallbackQueries)
	if len(c.Curation.FallbackQueries) == 0 {
		c.Curation.FallbackQueries = defaultFallbackQueries()
	}
	if len(c.Curation.Awards) == 0 {
		c.Curation.Awards = defaultAwards()
	}
}

func (c *Config) normalizeOutput() error {
	c.Output.Path = strings.TrimSpace(c.Output.Path)
	if c.Output.Path == "" {
		c.Output.Path = defaultOutputPath
	}
	var err error
	if c.Output.Path, err = expandPath(c.Output.Path); err != nil {
		return fmt.Errorf("output.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeCache() error {
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath()
	}
	var err error
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = defaultCacheTTLHours
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level

	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}

func trimQueries(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
