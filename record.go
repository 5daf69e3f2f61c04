package docsearch

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Record is the searchable unit of one documentation page.
type Record struct {
	Path    string `json:"path"`
	Href    string `json:"href"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Path == "" {
		return Errorf(EINVALID, "record path required")
	}
	if r.Href == "" {
		return Errorf(EINVALID, "record href required")
	}
	return nil
}

// NavRecord is a Record without its content, as stored in the navigation database.
type NavRecord struct {
	Path  string `json:"path"`
	Href  string `json:"href"`
	Title string `json:"title"`
}

// Index is the search database of one site section, in build order.
// It is treated as immutable once loaded.
type Index []*Record

// Validate returns an error if any record is invalid or two records share a path.
func (idx Index) Validate() error {
	seen := make(map[string]struct{}, len(idx))
	for _, r := range idx {
		if r == nil {
			return Errorf(EINVALID, "nil record in index")
		}
		if err := r.Validate(); err != nil {
			return err
		}
		if _, ok := seen[r.Path]; ok {
			return Errorf(ECONFLICT, "duplicate record path %q", r.Path)
		}
		seen[r.Path] = struct{}{}
	}
	return nil
}

// DecodeIndex parses a serialized search database and validates it.
func DecodeIndex(data []byte) (Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	// Unmarshal leaves a JSON null as a nil slice.
	if idx == nil {
		return nil, errors.New("search database is not a JSON array")
	}
	if err := idx.Validate(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Navigation returns the navigation database: the same records, in the same
// order, with content omitted.
func (idx Index) Navigation() []NavRecord {
	nav := make([]NavRecord, 0, len(idx))
	for _, r := range idx {
		nav = append(nav, NavRecord{Path: r.Path, Href: r.Href, Title: r.Title})
	}
	return nav
}

// RecordHref derives the canonical site-relative URL of a page:
// "/<section>/<rel without .md>", where rel is the path below the prefix.
func RecordHref(section, prefix, path string) string {
	rel := path
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		rel = strings.TrimPrefix(rel, prefix+"/")
	}
	rel = strings.TrimSuffix(rel, ".md")
	return "/" + section + "/" + rel
}

// RecordTitle picks the title for a page given its trimmed content. When the
// first line is a level-1 heading, inline renders its text to plain text;
// otherwise the href is used.
func RecordTitle(content, href string, inline func(string) (string, error)) (string, error) {
	first, _, _ := strings.Cut(content, "\n")
	first = strings.TrimRight(first, "\r")
	if !strings.HasPrefix(first, "# ") {
		return href, nil
	}
	title, err := inline(first[2:])
	if err != nil {
		return "", err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return href, nil
	}
	return title, nil
}

// IndexFetcher retrieves one search database over the network or from disk.
type IndexFetcher interface {
	// FetchIndex performs a single retrieval of the database at url.
	// Returns *FetchError for unsuccessful responses and *ParseError when the
	// body is not a database.
	FetchIndex(ctx context.Context, url string) (Index, error)
}

// IndexLoader returns the search database for a URL, loading it at most once.
type IndexLoader interface {
	// Load returns the cached database for url or fetches it. Concurrent
	// calls for the same url share a single fetch. Failures are not cached.
	Load(ctx context.Context, url string) (Index, error)
}
