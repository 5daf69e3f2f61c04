// Package lipgloss renders search sessions to a terminal with
// github.com/charmbracelet/lipgloss.
package lipgloss

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/docsearch"
	"github.com/mattn/go-isatty"
)

// Ensure Display implements docsearch.Display at compile time.
var _ docsearch.Display = (*Display)(nil)

// Display writes search session output as text. Matches are highlighted with
// color on a terminal and wrapped in brackets otherwise.
type Display struct {
	mu      sync.Mutex
	w       io.Writer
	nav     []docsearch.NavRecord
	color   bool
	baseURL string
	opener  func(href string)

	accent lipgloss.Style
	muted  lipgloss.Style
	bold   lipgloss.Style
	mark   lipgloss.Style
}

// Option configures a Display.
type Option func(*Display)

// WithColor forces color on or off instead of detecting a terminal.
func WithColor(color bool) Option {
	return func(d *Display) {
		d.color = color
	}
}

// WithBaseURL prefixes hrefs printed by Navigate.
func WithBaseURL(base string) Option {
	return func(d *Display) {
		d.baseURL = strings.TrimSuffix(base, "/")
	}
}

// WithOpener is called with the href of every Navigate.
func WithOpener(fn func(href string)) Option {
	return func(d *Display) {
		d.opener = fn
	}
}

// NewDisplay creates a Display writing to w. nav is listed when the session
// is idle.
func NewDisplay(w io.Writer, nav []docsearch.NavRecord, opts ...Option) *Display {
	d := &Display{
		w:     w,
		nav:   nav,
		color: isTerminal(w),
	}
	for _, opt := range opts {
		opt(d)
	}

	r := lipgloss.NewRenderer(w)
	d.accent = r.NewStyle().Foreground(lipgloss.Color("#A78BFA"))
	d.muted = r.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	d.bold = r.NewStyle().Bold(true)
	d.mark = r.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)
	return d
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func (d *Display) ShowNavigation() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.nav) == 0 {
		d.println(d.style(d.muted, "No pages."))
		return
	}
	for _, r := range d.nav {
		d.println(d.style(d.bold, r.Title) + "  " + d.style(d.muted, r.Href))
	}
}

func (d *Display) ShowLoading() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.println(d.style(d.muted, "Loading search index..."))
}

func (d *Display) ShowError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.println("Search unavailable: " + err.Error())
}

func (d *Display) ShowResults(results *docsearch.Results) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(results.Matches) == 0 {
		d.println(fmt.Sprintf("No results for %q.", results.Query))
		return
	}

	for i, m := range results.Matches {
		s := docsearch.Highlight(m)
		d.println(fmt.Sprintf("%d. %s  %s %s",
			i+1,
			d.spans(s.Title),
			d.style(d.accent, s.Href),
			d.style(d.muted, fmt.Sprintf("(score %d)", s.Score)),
		))
		for _, line := range s.Lines {
			d.println("   " + d.spans(strings.TrimSpace(line)))
		}
	}
	if results.Truncated() {
		d.println(d.style(d.muted, fmt.Sprintf("Showing %d of %d results.", len(results.Matches), results.Total)))
	}
}

// ClearInput is a no-op: the query is read line by line.
func (d *Display) ClearInput() {}

// FocusInput is a no-op: the terminal always reads the query.
func (d *Display) FocusInput() {}

func (d *Display) Navigate(href string) {
	d.mu.Lock()
	d.println("Opening " + d.style(d.accent, d.baseURL+href))
	d.mu.Unlock()

	if d.opener != nil {
		d.opener(href)
	}
}

// spans renders a marked string.
func (d *Display) spans(s string) string {
	var b strings.Builder
	for _, span := range docsearch.Spans(s) {
		switch {
		case !span.Marked:
			b.WriteString(span.Text)
		case d.color:
			b.WriteString(d.mark.Render(span.Text))
		default:
			b.WriteString("[" + span.Text + "]")
		}
	}
	return b.String()
}

func (d *Display) style(st lipgloss.Style, s string) string {
	if !d.color {
		return s
	}
	return st.Render(s)
}

func (d *Display) println(s string) {
	_, _ = fmt.Fprintln(d.w, s)
}
