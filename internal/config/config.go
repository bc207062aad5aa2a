package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// YouTube contains configuration for the YouTube Data API search source.
type YouTube struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	PageSize       int    `toml:"page_size"`
	MaxPages       int    `toml:"max_pages"`
	DurationClass  string `toml:"duration_class"`
	SafeSearch     string `toml:"safe_search"`
	RequestTimeout int    `toml:"request_timeout"`
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey       string `toml:"api_key"`
	BaseURL      string `toml:"base_url"`
	ImageBaseURL string `toml:"image_base_url"`
	Language     string `toml:"language"`
	IncludeAdult bool   `toml:"include_adult"`
}

// Wikidata contains configuration for the award lookup endpoint.
type Wikidata struct {
	Endpoint  string `toml:"endpoint"`
	UserAgent string `toml:"user_agent"`
}

// Row declares one named row of the daily payload.
type Row struct {
	Name string `toml:"name"`
	// Order is the search sort order. Empty selects DefaultOrderFor(Name).
	Order   string   `toml:"order"`
	Queries []string `toml:"queries"`
}

// Curation contains the row table and candidate acceptance rules.
type Curation struct {
	Criteria        string            `toml:"criteria"`
	RowSize         int               `toml:"row_size"`
	MinMinutes      int               `toml:"min_minutes"`
	PagePauseMS     int               `toml:"page_pause_ms"`
	BatchLimit      int               `toml:"batch_limit"`
	ExcludePattern  string            `toml:"exclude_pattern"`
	FallbackQueries []string          `toml:"fallback_queries"`
	Rows            []Row             `toml:"rows"`
	Awards          map[string]string `toml:"awards"`
}

// Output contains configuration for the generated artifact.
type Output struct {
	Path string `toml:"path"`
	Lock bool   `toml:"lock"`
}

// Cache contains configuration for the metadata lookup cache.
type Cache struct {
	Enabled  bool   `toml:"enabled"` // Default: false
	Path     string `toml:"path"`    // Default: ~/.cache/movienight/metacache.db
	TTLHours int    `toml:"ttl_hours"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format     string `toml:"format"`
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Config encapsulates all configuration values for movienight.
//
// Configuration sections by subsystem:
//   - YouTube: video search and batch detail lookups
//   - TMDB: film metadata enrichment
//   - Wikidata: award lookups
//   - Curation: rows, query pools, acceptance rules, award allow-list
//   - Output: artifact path and run lock
//   - Cache: optional SQLite lookup cache
//   - Logging: log format, level, and optional rotated file
type Config struct {
	YouTube  YouTube  `toml:"youtube"`
	TMDB     TMDB     `toml:"tmdb"`
	Wikidata Wikidata `toml:"wikidata"`
	Curation Curation `toml:"curation"`
	Output   Output   `toml:"output"`
	Cache    Cache    `toml:"cache"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		// Row, fallback, and award tables in a file replace the defaults
		// wholesale; normalize restores any table the file leaves out.
		cfg.Curation.Rows = nil
		cfg.Curation.FallbackQueries = nil
		cfg.Curation.Awards = nil

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// RowNames returns the declared row names in processing order.
func (c *Config) RowNames() []string {
	names := make([]string, 0, len(c.Curation.Rows))
	for _, row := range c.Curation.Rows {
		names = append(names, row.Name)
	}
	return names
}

// RowOrder returns the effective search order for a row.
func (r Row) RowOrder() string {
	if order := strings.TrimSpace(r.Order); order != "" {
		return order
	}
	return DefaultOrderFor(r.Name)
}

// DefaultOrderFor maps a row name to its search sort order. Unlisted rows
// fall back to relevance.
func DefaultOrderFor(rowName string) string {
	switch rowName {
	case "Recently Uploaded":
		return "date"
	case "Popular":
		return "viewCount"
	default:
		return "relevance"
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCachePath() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "movienight", "metacache.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/movienight/metacache.db"
	}
	return filepath.Join(home, ".cache", "movienight", "metacache.db")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
