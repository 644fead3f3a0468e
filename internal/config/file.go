package config

// SearchConfig holds per-search configuration for a single region name.
// This allows pinning crawl behavior for regions that are scraped regularly,
// so a repeated crawl needs nothing but the name on the command line.
type SearchConfig struct {
	// StartURL overrides the global start URL for this search.
	// If empty, the global StartURL is used.
	StartURL string `yaml:"startURL,omitempty"`

	// OutDir overrides the output directory for this search.
	// If empty, the global OutDir is used.
	OutDir string `yaml:"outDir,omitempty"`

	// Workers overrides the global worker count for this search.
	// If zero, the global Workers value is used.
	Workers int `yaml:"workers,omitempty"`

	// UserAgent overrides the User-Agent header for this search.
	UserAgent string `yaml:"userAgent,omitempty"`
}

// File represents the structure of the .geoscraper configuration file.
type File struct {
	// Searches maps region names to their per-search configurations.
	// Keys are compared verbatim against the search name given on the
	// command line.
	Searches map[string]SearchConfig `yaml:"searches,omitempty"`

	// Defaults contains default search configuration applied to all
	// searches unless overridden in the per-search configuration.
	Defaults SearchConfig `yaml:"defaults,omitempty"`
}

// GetSearchConfig returns the configuration for a specific region name.
// It merges the per-search configuration with defaults.
func (cf *File) GetSearchConfig(searchName string) SearchConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with per-search configuration if present
	if sc, ok := cf.Searches[searchName]; ok {
		if sc.StartURL != "" {
			result.StartURL = sc.StartURL
		}
		if sc.OutDir != "" {
			result.OutDir = sc.OutDir
		}
		if sc.Workers != 0 {
			result.Workers = sc.Workers
		}
		if sc.UserAgent != "" {
			result.UserAgent = sc.UserAgent
		}
	}

	return result
}
