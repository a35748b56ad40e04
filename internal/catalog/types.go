package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID identifies a catalog item. Product files in the wild carry both
// numeric ids (`1`) and string ids (`"sku-1"`); both decode into ID and
// compare by their textual form.
type ID struct {
	value   string
	numeric bool
}

// NewID returns an ID from its textual form.
func NewID(s string) ID {
	return ID{value: strings.TrimSpace(s), numeric: isNumber(s)}
}

// String returns the textual form of the id.
func (id ID) String() string { return id.value }

// IsZero reports whether the id is empty.
func (id ID) IsZero() bool { return id.value == "" }

// MarshalJSON writes numeric ids as JSON numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("catalog: id must not be null")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("catalog: decoding id: %w", err)
		}
		*id = ID{value: strings.TrimSpace(s)}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("catalog: id must be a number or string: %w", err)
	}
	*id = ID{value: n.String(), numeric: true}
	return nil
}

func isNumber(s string) bool {
	var n json.Number
	return s != "" && json.Unmarshal([]byte(s), &n) == nil
}

// Item is a single catalog entry. Items are never mutated after load.
type Item struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// document is the on-disk shape of a catalog file.
type document struct {
	Products []Item `json:"products"`
}
