// Package view derives the renderable model from the search session.
// Projection is a pure function: the same session always produces the
// same view model, which keeps rendering decisions testable without a
// terminal.
package view

import "github.com/hammamikhairi/forager/internal/domain"

// ViewModel is everything the screen needs to render one frame.
type ViewModel struct {
	ShowSpinner bool
	ErrorText   string
	Single      *domain.Recipe
	Recipes     []*domain.Recipe
	CanLoadMore bool
	LoadingMore bool
}

// Project maps a session onto its view model. No side effects.
func Project(s domain.SearchSession) ViewModel {
	return ViewModel{
		ShowSpinner: s.Busy,
		ErrorText:   s.ErrMsg,
		Single:      s.Single,
		Recipes:     s.Window.Fetched,
		CanLoadMore: s.Window.HasMore() && !s.Busy && !s.LoadingMore,
		LoadingMore: s.LoadingMore,
	}
}
