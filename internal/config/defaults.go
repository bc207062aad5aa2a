package config

const (
	defaultConfigPath        = "~/.config/movienight/config.toml"
	projectConfigName        = "movienight.toml"
	defaultYouTubeBaseURL    = "https://www.googleapis.com/youtube/v3"
	defaultYouTubePageSize   = 25
	defaultYouTubeMaxPages   = 4
	defaultDurationClass     = "long"
	defaultSafeSearch        = "none"
	defaultRequestTimeout    = 25
	defaultTMDBBaseURL       = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL  = "https://image.tmdb.org/t/p/w500"
	defaultTMDBLanguage      = "en-US"
	defaultWikidataEndpoint  = "https://query.wikidata.org/sparql"
	defaultWikidataUserAgent = "MovieNight/1.0 (daily curation job)"
	defaultCriteria          = "Public daily mix: drama, history, war, political thrillers. Secondary action thrillers."
	defaultRowSize           = 4
	defaultMinMinutes        = 75
	defaultPagePauseMS       = 200
	defaultBatchLimit        = 50
	defaultExcludePattern    = `(?i)\bdocumentary\b`
	defaultOutputPath        = "data/today.json"
	defaultCacheTTLHours     = 24 * 7
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		YouTube: YouTube{
			BaseURL:        defaultYouTubeBaseURL,
			PageSize:       defaultYouTubePageSize,
			MaxPages:       defaultYouTubeMaxPages,
			DurationClass:  defaultDurationClass,
			SafeSearch:     defaultSafeSearch,
			RequestTimeout: defaultRequestTimeout,
		},
		TMDB: TMDB{
			BaseURL:      defaultTMDBBaseURL,
			ImageBaseURL: defaultTMDBImageBaseURL,
			Language:     defaultTMDBLanguage,
		},
		Wikidata: Wikidata{
			Endpoint:  defaultWikidataEndpoint,
			UserAgent: defaultWikidataUserAgent,
		},
		Curation: Curation{
			Criteria:        defaultCriteria,
			RowSize:         defaultRowSize,
			MinMinutes:      defaultMinMinutes,
			PagePauseMS:     defaultPagePauseMS,
			BatchLimit:      defaultBatchLimit,
			ExcludePattern:  defaultExcludePattern,
			FallbackQueries: defaultFallbackQueries(),
			Rows:            defaultRows(),
			Awards:          defaultAwards(),
		},
		Output: Output{
			Path: defaultOutputPath,
			Lock: true,
		},
		Cache: Cache{
			Path:     defaultCachePath(),
			TTLHours: defaultCacheTTLHours,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

func defaultRows() []Row {
	return []Row{
		{
			Name:    "Recently Uploaded",
			Queries: []string{"political thriller full movie", "war full movie", "historical drama full movie", "history war full movie"},
		},
		{
			Name:    "Popular",
			Queries: []string{"political thriller full movie", "war full movie", "historical drama full movie", "history war full movie"},
		},
		{
			Name:    "Political",
			Queries: []string{"political thriller full movie", "political drama full movie", "conspiracy thriller full movie", "spy political thriller full movie"},
		},
		{
			Name:    "War",
			Queries: []string{"war full movie", "ww2 full movie", "vietnam war full movie", "military thriller full movie"},
		},
		{
			Name:    "History",
			Queries: []string{"historical drama full movie", "based on true events full movie", "period drama full movie", "history war drama full movie"},
		},
	}
}

func defaultFallbackQueries() []string {
	return []string{"full movie", "political thriller full movie", "war full movie", "historical drama full movie"}
}

func defaultAwards() map[string]string {
	return map[string]string{
		"Q103360":  "Oscar Best Picture",
		"Q106291":  "Oscar Best Director",
		"Q1033603": "Oscar Best Original Screenplay",
		"Q1033604": "Oscar Best Adapted Screenplay",
		"Q106301":  "Golden Globe Best Motion Picture (Drama)",
		"Q106295":  "Golden Globe Best Motion Picture (Musical/Comedy)",
		"Q106296":  "Golden Globe Best Director",
		"Q106297":  "Golden Globe Best Screenplay",
	}
}
