package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/lipgloss"
	"github.com/fwojciec/docsearch/search"
)

// Interactive commands. An empty line clears the query.
const (
	openCommand = ":open"
	quitCommand = ":quit"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if c.Query == "" && !c.Interactive {
		err := docsearch.Errorf(docsearch.EINVALID, "query required unless --interactive")
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	limit := c.Limit
	if limit <= 0 && deps.Config != nil {
		limit = deps.Config.MaxResults
	}

	opts := []lipgloss.Option{lipgloss.WithBaseURL(deps.BaseURL)}
	if deps.Opener != nil {
		opts = append(opts, lipgloss.WithOpener(deps.Opener))
	}
	display := lipgloss.NewDisplay(deps.Stdout, deps.Navigation, opts...)
	ctrl := search.NewController(deps.Loader, display, deps.IndexURL, limit)
	ctrl.Focused(true)

	if c.Interactive {
		return c.interactive(deps, ctrl)
	}

	// Load failures are already shown by the display.
	if err := ctrl.QueryChanged(deps.Ctx, c.Query); err != nil {
		return err
	}
	if !c.Open {
		return nil
	}
	if _, err := ctrl.MainResult(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}
	return ctrl.KeyPressed(deps.Ctx, docsearch.KeyEnter)
}

func (c *SearchCmd) interactive(deps *Dependencies, ctrl *search.Controller) error {
	if err := ctrl.QueryChanged(deps.Ctx, c.Query); err != nil {
		deps.Logger.Debug("search failed", "query", c.Query, "err", err)
	}

	scanner := bufio.NewScanner(deps.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		var err error
		switch line {
		case quitCommand:
			return nil
		case openCommand:
			err = ctrl.KeyPressed(deps.Ctx, docsearch.KeyEnter)
		case "":
			err = ctrl.KeyPressed(deps.Ctx, docsearch.KeyEscape)
		default:
			err = ctrl.QueryChanged(deps.Ctx, line)
		}
		if err != nil {
			// Shown by the display; the session continues so the user can retry.
			deps.Logger.Debug("search failed", "query", line, "err", err)
		}
	}
	return scanner.Err()
}
