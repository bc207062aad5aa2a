package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var validOrders = map[string]struct{}{
	"date":       {},
	"viewCount":  {},
	"relevance":  {},
	"rating":     {},
	"title":      {},
	"videoCount": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCredentials(); err != nil {
		return err
	}
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateCuration(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// ValidateCredentials reports a missing API key. It runs as part of
// Validate and is exposed for commands that skip full loading.
func (c *Config) ValidateCredentials() error {
	return c.validateCredentials()
}

func (c *Config) validateCredentials() error {
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("youtube.api_key is required. Set YOUTUBE_API_KEY env var or edit %s (create with 'movienight config init')", defaultPath)
	}
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'movienight config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if c.YouTube.PageSize <= 0 || c.YouTube.PageSize > 50 {
		return errors.New("youtube.page_size must be between 1 and 50")
	}
	if c.YouTube.MaxPages <= 0 {
		return errors.New("youtube.max_pages must be positive")
	}
	switch c.YouTube.DurationClass {
	case "", "any", "short", "medium", "long":
	default:
		return fmt.Errorf("youtube.duration_class: unsupported value %q", c.YouTube.DurationClass)
	}
	switch c.YouTube.SafeSearch {
	case "", "none", "moderate", "strict":
	default:
		return fmt.Errorf("youtube.safe_search: unsupported value %q", c.YouTube.SafeSearch)
	}
	return nil
}

func (c *Config) validateCuration() error {
	if c.Curation.RowSize <= 0 {
		return errors.New("curation.row_size must be positive")
	}
	if c.Curation.MinMinutes <= 0 {
		return errors.New("curation.min_minutes must be positive")
	}
	if c.Curation.BatchLimit <= 0 || c.Curation.BatchLimit > 50 {
		return errors.New("curation.batch_limit must be between 1 and 50")
	}
	if _, err := regexp.Compile(c.Curation.ExcludePattern); err != nil {
		return fmt.Errorf("curation.exclude_pattern: %w", err)
	}
	seen := make(map[string]struct{}, len(c.Curation.Rows))
	for i, row := range c.Curation.Rows {
		if row.Name == "" {
			return fmt.Errorf("curation.rows[%d].name must be set", i)
		}
		if _, dup := seen[row.Name]; dup {
			return fmt.Errorf("curation.rows: duplicate row name %q", row.Name)
		}
		seen[row.Name] = struct{}{}
		if len(row.Queries) == 0 {
			return fmt.Errorf("curation.rows[%q].queries must list at least one query", row.Name)
		}
		if _, ok := validOrders[row.Order]; !ok {
			return fmt.Errorf("curation.rows[%q].order: unsupported value %q", row.Name, row.Order)
		}
	}
	for id, label := range c.Curation.Awards {
		if !strings.HasPrefix(id, "Q") || strings.TrimSpace(label) == "" {
			return fmt.Errorf("curation.awards: invalid entry %q = %q", id, label)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
