// Package selection derives the displayed subset of the catalog from the
// active category, the search text and the set of selected items.
package selection

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
)

// AllCategories is the category sentinel that disables category filtering.
const AllCategories = "all"

// DefaultStorageKey is the durable key the selection is mirrored under.
const DefaultStorageKey = "selectedProducts"

// Mirror is the durable key-value store the selection is written through to.
type Mirror interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// Options controls the behaviours that differ between deployments.
type Options struct {
	// SearchOverridesCategory shows cross-category search results when the
	// category is "all". When false a category must be chosen first.
	SearchOverridesCategory bool
	// Persist mirrors the selection to the Mirror on every mutation.
	Persist bool
	// StorageKey overrides DefaultStorageKey.
	StorageKey string
}

// FilterState is the transient filter input.
type FilterState struct {
	Category string `json:"category"`
	Search   string `json:"search"`
}

// Engine owns the selection and recomputes the visible set eagerly.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	catalog  *catalog.Catalog
	mirror   Mirror
	opts     Options
	filter   FilterState
	selected []catalog.Item
	visible  []catalog.Item
}

// New creates an engine over cat and rehydrates the selection from mirror.
// A missing or unreadable mirror value yields an empty selection; the
// returned error reports the read problem but the engine is always usable.
func New(cat *catalog.Catalog, mirror Mirror, opts Options) (*Engine, error) {
	if opts.StorageKey == "" {
		opts.StorageKey = DefaultStorageKey
	}
	e := &Engine{
		catalog: cat,
		mirror:  mirror,
		opts:    opts,
		filter:  FilterState{Category: AllCategories},
	}
	err := e.rehydrate()
	e.recompute()
	return e, err
}

func (e *Engine) persisting() bool {
	return e.opts.Persist && e.mirror != nil
}

func (e *Engine) rehydrate() error {
	if !e.persisting() {
		return nil
	}
	raw, ok, err := e.mirror.Get(e.opts.StorageKey)
	if err != nil {
		return fmt.Errorf("reading selection: %w", err)
	}
	if !ok || len(raw) == 0 {
		return nil
	}

	var stored []catalog.Item
	if err := json.Unmarshal(raw, &stored); err != nil {
		return fmt.Errorf("decoding stored selection: %w", err)
	}
	for _, s := range stored {
		item, ok := e.catalog.Get(s.ID)
		if !ok || e.IsSelected(item.ID) {
			continue
		}
		e.selected = append(e.selected, item)
	}
	return nil
}

// SetCategory sets the category filter. Unknown labels match nothing.
func (e *Engine) SetCategory(category string) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = AllCategories
	}
	e.filter.Category = category
	e.recompute()
}

// SetSearchText sets the trimmed search text.
func (e *Engine) SetSearchText(text string) {
	e.filter.Search = strings.TrimSpace(text)
	e.recompute()
}

// Select appends the item to the selection. Unknown or already selected
// ids are a no-op. The bool reports whether the selection changed.
func (e *Engine) Select(id catalog.ID) (bool, error) {
	item, ok := e.catalog.Get(id)
	if !ok || e.IsSelected(id) {
		return false, nil
	}
	e.selected = append(e.selected, item)
	e.recompute()
	return true, e.save()
}

// Deselect removes the item from the selection if present.
func (e *Engine) Deselect(id catalog.ID) (bool, error) {
	for i, item := range e.selected {
		if item.ID.String() != id.String() {
			continue
		}
		e.selected = append(e.selected[:i:i], e.selected[i+1:]...)
		e.recompute()
		return true, e.save()
	}
	return false, nil
}

// Clear empties the selection and removes the durable mirror entry.
func (e *Engine) Clear() error {
	e.selected = nil
	e.recompute()
	if !e.persisting() {
		return nil
	}
	if err := e.mirror.Remove(e.opts.StorageKey); err != nil {
		return fmt.Errorf("clearing stored selection: %w", err)
	}
	return nil
}

func (e *Engine) save() error {
	if !e.persisting() {
		return nil
	}
	items := e.selected
	if items == nil {
		items = []catalog.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding selection: %w", err)
	}
	if err := e.mirror.Set(e.opts.StorageKey, data); err != nil {
		return fmt.Errorf("storing selection: %w", err)
	}
	return nil
}

// IsSelected reports whether id is in the selection.
func (e *Engine) IsSelected(id catalog.ID) bool {
	for _, item := range e.selected {
		if item.ID.String() == id.String() {
			return true
		}
	}
	return false
}

// Selected returns the selection in insertion order.
func (e *Engine) Selected() []catalog.Item {
	out := make([]catalog.Item, len(e.selected))
	copy(out, e.selected)
	return out
}

// Visible returns the current visible set in catalog order.
func (e *Engine) Visible() []catalog.Item {
	out := make([]catalog.Item, len(e.visible))
	copy(out, e.visible)
	return out
}

// Filter returns the current filter state.
func (e *Engine) Filter() FilterState { return e.filter }

func (e *Engine) recompute() {
	e.visible = e.visible[:0]
	if e.needsNarrowing() {
		return
	}
	query := strings.ToLower(e.filter.Search)
	for _, item := range e.catalog.Items() {
		if e.IsSelected(item.ID) {
			continue
		}
		if !e.categoryMatches(item) {
			continue
		}
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		e.visible = append(e.visible, item)
	}
}

func (e *Engine) needsNarrowing() bool {
	if !strings.EqualFold(e.filter.Category, AllCategories) {
		return false
	}
	if e.filter.Search == "" {
		return true
	}
	return !e.opts.SearchOverridesCategory
}

func (e *Engine) categoryMatches(item catalog.Item) bool {
	if strings.EqualFold(e.filter.Category, AllCategories) {
		return true
	}
	return strings.EqualFold(item.Category, e.filter.Category)
}

func matchesQuery(item catalog.Item, query string) bool {
	for _, field := range []string{item.Name, item.Brand, item.Category, item.Description} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
