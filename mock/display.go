package mock

import "github.com/fwojciec/docsearch"

var _ docsearch.Display = (*Display)(nil)

// Display is a mock implementation of docsearch.Display.
type Display struct {
	ShowNavigationFn func()
	ShowLoadingFn    func()
	ShowErrorFn      func(err error)
	ShowResultsFn    func(results *docsearch.Results)
	ClearInputFn     func()
	FocusInputFn     func()
	NavigateFn       func(href string)
}

func (d *Display) ShowNavigation() {
	d.ShowNavigationFn()
}

func (d *Display) ShowLoading() {
	d.ShowLoadingFn()
}

func (d *Display) ShowError(err error) {
	d.ShowErrorFn(err)
}

func (d *Display) ShowResults(results *docsearch.Results) {
	d.ShowResultsFn(results)
}

func (d *Display) ClearInput() {
	d.ClearInputFn()
}

func (d *Display) FocusInput() {
	d.FocusInputFn()
}

func (d *Display) Navigate(href string) {
	d.NavigateFn(href)
}
