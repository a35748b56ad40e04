package selection

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
)

// ViewStatus describes why the visible set looks the way it does.
type ViewStatus string

const (
	StatusNeedsNarrowing ViewStatus = "needs_narrowing"
	StatusNoMatches      ViewStatus = "no_matches"
	StatusHasResults     ViewStatus = "has_results"
)

// Status classifies the current visible set.
func (e *Engine) Status() ViewStatus {
	switch {
	case e.needsNarrowing():
		return StatusNeedsNarrowing
	case len(e.visible) == 0:
		return StatusNoMatches
	default:
		return StatusHasResults
	}
}

// Message returns the empty-state text for the product grid, or "" when
// there are results to show.
func (e *Engine) Message() string {
	switch e.Status() {
	case StatusNeedsNarrowing:
		if e.filter.Search != "" {
			return "Select a category to search within."
		}
		return "Select a category or search for products."
	case StatusNoMatches:
		if e.filter.Search != "" {
			return fmt.Sprintf("No products found matching %q.", e.filter.Search)
		}
		if e.catalog.Len() == 0 {
			return "No products available."
		}
		return "No products found in this category."
	default:
		return ""
	}
}

// Snapshot is a read-only view of the engine state for rendering.
type Snapshot struct {
	Filter   FilterState    `json:"filter"`
	Status   ViewStatus     `json:"status"`
	Message  string         `json:"message,omitempty"`
	Visible  []catalog.Item `json:"visible"`
	Selected []catalog.Item `json:"selected"`
}

// Snapshot captures filter, visible set and selection in one value.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Filter:   e.filter,
		Status:   e.Status(),
		Message:  e.Message(),
		Visible:  e.Visible(),
		Selected: e.Selected(),
	}
}

// Categories lists the selectable category values, "all" first.
func (e *Engine) Categories() []string {
	out := []string{AllCategories}
	for _, c := range e.catalog.Categories() {
		if strings.EqualFold(c, AllCategories) {
			continue
		}
		out = append(out, c)
	}
	return out
}
