package docsearch

import "strings"

// Config describes how one documentation section is built and searched.
type Config struct {
	// Section names the site section; hrefs start with "/<Section>/".
	Section string `toml:"section"`

	// SourceDir is the root of the markdown sources.
	SourceDir string `toml:"source_dir"`

	// Prefix is the directory below SourceDir that maps to the section root.
	Prefix string `toml:"prefix"`

	// OutputDir receives "<Section>/..." build outputs.
	OutputDir string `toml:"output_dir"`

	// Include and Exclude are doublestar globs relative to SourceDir.
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`

	// Languages lists fenced code languages that get syntax highlighting.
	// Other languages render as plain text.
	Languages []string `toml:"languages"`

	// CodeStyle names the highlighting style.
	CodeStyle string `toml:"code_style"`

	// BaseURL enables sitemap.xml output when set.
	BaseURL string `toml:"base_url"`

	// MaxResults caps ranked search results.
	MaxResults int `toml:"max_results"`

	// Concurrency bounds parallel page compilation.
	Concurrency int `toml:"concurrency"`
}

// Output file names inside a section directory.
const (
	SearchDatabaseFile     = "db.json"
	NavigationDatabaseFile = "nav.json"
	SitemapFile            = "sitemap.xml"
	CategoriesFile         = "categories.json"
	StyleFile              = "style.css"
)

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		SourceDir:   ".",
		OutputDir:   "dist",
		Include:     []string{"**/*.md"},
		Languages:   []string{"c", "cpp", "shell", "xml"},
		CodeStyle:   "github",
		MaxResults:  MaxResults,
		Concurrency: 8,
	}
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	if c.Section == "" {
		return Errorf(EINVALID, "section name required")
	}
	if strings.ContainsAny(c.Section, `/\`) {
		return Errorf(EINVALID, "section name %q must not contain path separators", c.Section)
	}
	if c.SourceDir == "" {
		return Errorf(EINVALID, "source directory required")
	}
	if c.OutputDir == "" {
		return Errorf(EINVALID, "output directory required")
	}
	if c.MaxResults < 0 {
		return Errorf(EINVALID, "max results must not be negative")
	}
	return nil
}

// IndexURL is the site-relative URL of the section's search database.
func (c *Config) IndexURL() string {
	return "/" + c.Section + "/" + SearchDatabaseFile
}
