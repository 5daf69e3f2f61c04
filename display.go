package docsearch

// State is the state of an interactive search session.
type State int

// Search session states.
const (
	StateIdle State = iota
	StateLoading
	StateError
	StateResults
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateResults:
		return "results"
	}
	return "unknown"
}

// Key is a keyboard input handled by a search session.
type Key int

// Keys handled by a search session.
const (
	// KeyEnter jumps to the main result.
	KeyEnter Key = iota + 1
	// KeyEscape clears the query.
	KeyEscape
	// KeyShortcut is the global shortcut that focuses the query input.
	KeyShortcut
)

// Display is the user interface a search session writes to.
type Display interface {
	// ShowNavigation shows the primary navigation and hides results.
	ShowNavigation()

	// ShowLoading shows a progress indicator while the index loads.
	ShowLoading()

	// ShowError reports a failed index load.
	ShowError(err error)

	// ShowResults renders ranked results. Zero matches must render an
	// explicit "no results" message; a truncated list must say so.
	ShowResults(results *Results)

	// ClearInput empties the query input.
	ClearInput()

	// FocusInput moves keyboard focus to the query input.
	FocusInput()

	// Navigate opens the page at href.
	Navigate(href string)
}
