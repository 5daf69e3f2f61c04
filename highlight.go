package docsearch

import (
	"html"
	"strings"
)

// Highlight sentinels. Both are control bytes that HTML escaping leaves
// untouched, so marking can happen before escaping and be turned into markup
// after it.
const (
	MarkStart = "\x02"
	MarkEnd   = "\x03"
)

// PreviewLines is the maximum number of content lines kept in a snippet.
const PreviewLines = 3

var stripMarks = strings.NewReplacer(MarkStart, "", MarkEnd, "")

// Snippet is a highlighted, not yet escaped, view of a match.
type Snippet struct {
	Href  string
	Score int

	// Title and Lines contain MarkStart/MarkEnd around every match.
	Title string
	Lines []string
}

// Highlight marks every matched substring in the title and content and keeps
// the first PreviewLines content lines that contain a mark.
func Highlight(m *MatchResult) Snippet {
	title := mark(stripMarks.Replace(m.Record.Title), m.TitleMatches)
	content := mark(stripMarks.Replace(m.Record.Content), m.ContentMatches)

	lines := make([]string, 0, PreviewLines)
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, MarkStart) {
			continue
		}
		lines = append(lines, line)
		if len(lines) == PreviewLines {
			break
		}
	}

	return Snippet{
		Href:  m.Record.Href,
		Score: m.Score,
		Title: title,
		Lines: lines,
	}
}

// mark wraps every literal, case-sensitive occurrence of each match in s.
func mark(s string, matches []string) string {
	for _, sub := range matches {
		sub = stripMarks.Replace(sub)
		if sub == "" {
			continue
		}
		s = strings.ReplaceAll(s, sub, MarkStart+sub+MarkEnd)
	}
	return s
}

// Markup describes how a snippet is turned into display text.
type Markup struct {
	Open      string
	Close     string
	LineBreak string

	// Escape is applied before the sentinels are replaced. Nil means none.
	Escape func(string) string
}

// HTMLMarkup escapes & < > " ' and highlights with <mark>.
var HTMLMarkup = Markup{
	Open:      "<mark>",
	Close:     "</mark>",
	LineBreak: "<br>",
	Escape:    html.EscapeString,
}

// Render escapes the snippet, replaces the sentinels with the markup and joins
// the preview lines.
func (s Snippet) Render(m Markup) (title, preview string) {
	r := strings.NewReplacer(MarkStart, m.Open, MarkEnd, m.Close)
	escape := m.Escape
	if escape == nil {
		escape = func(s string) string { return s }
	}

	lines := make([]string, len(s.Lines))
	for i, line := range s.Lines {
		lines[i] = r.Replace(escape(line))
	}
	return r.Replace(escape(s.Title)), strings.Join(lines, m.LineBreak)
}

// Span is a run of marked or unmarked text.
type Span struct {
	Text   string
	Marked bool
}

// Spans splits a marked string into runs. Nested marks count as marked;
// adjacent runs with the same state are merged.
func Spans(s string) []Span {
	var spans []Span
	add := func(text string, marked bool) {
		if text == "" {
			return
		}
		if n := len(spans); n > 0 && spans[n-1].Marked == marked {
			spans[n-1].Text += text
			return
		}
		spans = append(spans, Span{Text: text, Marked: marked})
	}

	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case MarkStart[0]:
			add(s[start:i], depth > 0)
			depth++
			start = i + 1
		case MarkEnd[0]:
			add(s[start:i], depth > 0)
			if depth > 0 {
				depth--
			}
			start = i + 1
		}
	}
	add(s[start:], depth > 0)
	return spans
}
