package search

import (
	"context"
	"sync"

	"github.com/fwojciec/docsearch"
)

// Controller is the state machine of one search session.
//
// Every event bumps a sequence number. A load that completes after a newer
// event only populates the index; it never renders over the newer event.
// Display methods are called with the controller's lock held and must not
// call back into the controller.
type Controller struct {
	loader   docsearch.IndexLoader
	display  docsearch.Display
	indexURL string
	limit    int

	mu      sync.Mutex
	seq     uint64
	state   docsearch.State
	query   string
	index   docsearch.Index
	results *docsearch.Results
	focused bool
}

// NewController creates a controller for the database at indexURL.
// A limit of zero means docsearch.MaxResults.
func NewController(loader docsearch.IndexLoader, display docsearch.Display, indexURL string, limit int) *Controller {
	return &Controller{
		loader:   loader,
		display:  display,
		indexURL: indexURL,
		limit:    limit,
	}
}

// QueryChanged handles a new value of the query input. An empty query returns
// to idle from any state. Otherwise the index is loaded if needed and the
// whole index is searched again.
//
// The returned error is the load failure that moved the session to the error
// state, if any.
func (c *Controller) QueryChanged(ctx context.Context, query string) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.query = query

	if query == "" {
		c.enterIdle()
		c.mu.Unlock()
		return nil
	}
	if c.index != nil {
		c.showResults(query)
		c.mu.Unlock()
		return nil
	}
	if c.state != docsearch.StateLoading {
		c.state = docsearch.StateLoading
		c.results = nil
		c.display.ShowLoading()
	}
	c.mu.Unlock()

	idx, err := c.loader.Load(ctx, c.indexURL)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil && c.index == nil {
		c.index = idx
	}
	if seq != c.seq {
		return nil
	}
	if err != nil {
		c.state = docsearch.StateError
		c.results = nil
		c.display.ShowError(err)
		return err
	}
	c.showResults(query)
	return nil
}

// KeyPressed handles keyboard input.
func (c *Controller) KeyPressed(ctx context.Context, key docsearch.Key) error {
	switch key {
	case docsearch.KeyShortcut:
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.focused {
			c.focused = true
			c.display.FocusInput()
		}
		return nil

	case docsearch.KeyEnter:
		c.mu.Lock()
		defer c.mu.Unlock()
		// No main result: nothing to open.
		if main := c.results.Main(); main != nil {
			c.display.Navigate(main.Record.Href)
		}
		return nil

	case docsearch.KeyEscape:
		c.mu.Lock()
		c.display.ClearInput()
		c.mu.Unlock()
		return c.QueryChanged(ctx, "")
	}
	return docsearch.Errorf(docsearch.EINVALID, "unknown key %d", key)
}

// Focused records whether the query input has keyboard focus.
func (c *Controller) Focused(focused bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focused = focused
}

// State returns the current session state.
func (c *Controller) State() docsearch.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Query returns the latest query.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// MainResult returns the top-ranked match of the current results.
// Returns ENOTFOUND when there is none.
func (c *Controller) MainResult() (*docsearch.MatchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if main := c.results.Main(); main != nil {
		return main, nil
	}
	return nil, docsearch.Errorf(docsearch.ENOTFOUND, "no main result")
}

func (c *Controller) enterIdle() {
	c.state = docsearch.StateIdle
	c.results = nil
	c.display.ShowNavigation()
}

func (c *Controller) showResults(query string) {
	c.results = docsearch.Search(c.index, query, c.limit)
	c.state = docsearch.StateResults
	c.display.ShowResults(c.results)
}
