package docsearch

import (
	"html/template"
	"strings"
)

// NavEntry is one page listed in the navigation tree.
type NavEntry struct {
	Path  string
	Href  string
	Title string
}

// Category groups the pages of one top-level directory.
type Category struct {
	Dir     string
	Name    string
	Entries []NavEntry
}

// BuildNavigation groups navigation records by their first directory below
// prefix. Pages directly under prefix are not listed. Category names come
// from names, keyed by directory, and default to the directory itself.
// Categories and entries keep the order of nav.
func BuildNavigation(nav []NavRecord, prefix string, names map[string]string) []*Category {
	prefix = strings.Trim(prefix, "/")

	var categories []*Category
	byDir := make(map[string]*Category)
	for _, r := range nav {
		rel := r.Path
		if prefix != "" {
			rel = strings.TrimPrefix(rel, prefix+"/")
		}
		dir, _, ok := strings.Cut(rel, "/")
		if !ok {
			continue
		}

		c, ok := byDir[dir]
		if !ok {
			name := dir
			if n, ok := names[dir]; ok && n != "" {
				name = n
			}
			c = &Category{Dir: dir, Name: name}
			byDir[dir] = c
			categories = append(categories, c)
		}
		c.Entries = append(c.Entries, NavEntry{Path: r.Path, Href: r.Href, Title: r.Title})
	}
	return categories
}

var navTemplate = template.Must(template.New("nav").Parse(
	`{{range .Categories}}<h2>{{.Name}}</h2>
{{range .Entries}}<li>{{if eq .Path $.Current}}<b>{{.Title}}</b>{{else}}<a href="{{.Href}}">{{.Title}}</a>{{end}}<br></li>
{{end}}{{end}}`))

// RenderNavigation renders the navigation tree as an HTML fragment. The entry
// whose path equals current is shown in bold instead of as a link.
func RenderNavigation(categories []*Category, current string) (string, error) {
	var b strings.Builder
	err := navTemplate.Execute(&b, struct {
		Categories []*Category
		Current    string
	}{categories, current})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

var tocTemplate = template.Must(template.New("toc").Parse(
	`{{range .}}<a href="#{{.Anchor}}" style="margin-left: {{.Indent}}em">- {{.Title}}</a><br>
{{end}}`))

// RenderTOC renders a table of contents with entries indented by heading level.
func RenderTOC(sections []Section) (string, error) {
	type entry struct {
		Section
		Indent int
	}
	entries := make([]entry, 0, len(sections))
	for _, s := range sections {
		entries = append(entries, entry{Section: s, Indent: s.Level - 1})
	}

	var b strings.Builder
	if err := tocTemplate.Execute(&b, entries); err != nil {
		return "", err
	}
	return b.String(), nil
}
