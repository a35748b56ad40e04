package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrDataLoad is returned when the catalog source cannot be read or decoded.
var ErrDataLoad = errors.New("catalog: data load failure")

// Catalog is the immutable, in-memory list of items loaded once at startup.
type Catalog struct {
	items []Item
	index map[string]int
}

// Load reads a catalog file from disk.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrDataLoad, path, err)
	}
	defer f.Close()

	cat, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes a catalog document of the form {"products": [...]}.
// Items with an empty id are rejected; duplicate ids keep the first entry.
func Parse(r io.Reader) (*Catalog, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decoding products: %v", ErrDataLoad, err)
	}

	cat := &Catalog{index: make(map[string]int, len(doc.Products))}
	for i, item := range doc.Products {
		if item.ID.IsZero() {
			return nil, fmt.Errorf("%w: product %d has no id", ErrDataLoad, i)
		}
		key := item.ID.String()
		if _, dup := cat.index[key]; dup {
			continue
		}
		cat.index[key] = len(cat.items)
		cat.items = append(cat.items, item)
	}
	return cat, nil
}

// New builds a catalog from items already in memory.
func New(items []Item) *Catalog {
	cat := &Catalog{index: make(map[string]int, len(items))}
	for _, item := range items {
		key := item.ID.String()
		if _, dup := cat.index[key]; dup {
			continue
		}
		cat.index[key] = len(cat.items)
		cat.items = append(cat.items, item)
	}
	return cat
}

// Items returns every item in source order.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Get looks up an item by id.
func (c *Catalog) Get(id ID) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	i, ok := c.index[id.String()]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Categories returns the distinct category labels in first-seen order.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, item := range c.items {
		key := strings.ToLower(item.Category)
		if item.Category == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item.Category)
	}
	return out
}

// Suggestions returns search keywords for the suggestion dropdown:
// categories first, then brands. A limit <= 0 means no limit.
func (c *Catalog) Suggestions(limit int) []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(s))
	}
	for _, cat := range c.Categories() {
		add(cat)
	}
	for _, item := range c.items {
		add(item.Brand)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
