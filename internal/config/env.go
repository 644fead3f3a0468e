package config

import "os"

// Environment variable names recognized as fallbacks for the most common
// options. Flags take precedence over the environment; the environment takes
// precedence over built-in defaults. The names are kept from earlier
// versions of this scraper so existing deployments keep working.
const (
	// EnvSearchName supplies the region name to search for.
	EnvSearchName = "WIKI_SEARCHNAME"

	// EnvStartURL supplies the directory page to start from.
	EnvStartURL = "WIKI_STARTURL"

	// EnvOutDir supplies the output directory.
	EnvOutDir = "WIKI_OUTDIR"
)

// ApplyEnv fills unset fields from the environment. A field counts as unset
// when the CLI left it empty (SearchName) or at its built-in default
// (StartURL, OutDir), so explicit flags always win over the environment.
func (c *Config) ApplyEnv() {
	if c.SearchName == "" {
		c.SearchName = os.Getenv(EnvSearchName)
	}
	if c.StartURL == DefaultStartURL {
		if v := os.Getenv(EnvStartURL); v != "" {
			c.StartURL = v
		}
	}
	if c.OutDir == DefaultOutDir {
		if v := os.Getenv(EnvOutDir); v != "" {
			c.OutDir = v
		}
	}
}

// ApplySearchConfig overlays per-search settings from the config file onto
// fields still at their built-in defaults. Explicit flags and environment
// variables always win over the config file.
func (c *Config) ApplySearchConfig(sc SearchConfig) {
	if sc.StartURL != "" && c.StartURL == DefaultStartURL {
		c.StartURL = sc.StartURL
	}
	if sc.OutDir != "" && c.OutDir == DefaultOutDir {
		c.OutDir = sc.OutDir
	}
	if sc.Workers != 0 && c.Workers == DefaultWorkers {
		c.Workers = sc.Workers
	}
	if sc.UserAgent != "" && c.UserAgent == DefaultUserAgent {
		c.UserAgent = sc.UserAgent
	}
}
