package catalog

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "products": [
    {"id": 1, "name": "Hydra Cleanser", "brand": "CeraVe", "category": "cleanser", "description": "Gentle foaming wash", "image": "a.png"},
    {"id": 2, "name": "Color Riche", "brand": "L'Oréal Paris", "category": "makeup", "description": "Satin lipstick", "image": "b.png"},
    {"id": "sku-3", "name": "Elvive Oil", "brand": "L'Oréal Paris", "category": "haircare", "description": "Nourishing oil", "image": "c.png"},
    {"id": 1, "name": "Duplicate", "brand": "X", "category": "cleanser", "description": "", "image": ""}
  ]
}`

func TestParse(t *testing.T) {
	cat, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, 3, cat.Len())
	items := cat.Items()
	assert.Equal(t, "Hydra Cleanser", items[0].Name, "duplicate id must keep first entry")
	assert.Equal(t, "sku-3", items[2].ID.String())
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"products": [`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataLoad))

	_, err = Parse(strings.NewReader(`{"products": [{"name": "no id"}]}`))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataLoad))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())
}

func TestGetAcceptsNumericAndStringForms(t *testing.T) {
	cat, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	item, ok := cat.Get(NewID("2"))
	require.True(t, ok)
	assert.Equal(t, "Color Riche", item.Name)

	_, ok = cat.Get(NewID("99"))
	assert.False(t, ok)
}

func TestIDRoundTripKeepsForm(t *testing.T) {
	var ids []ID
	require.NoError(t, json.Unmarshal([]byte(`[7, "abc"]`), &ids))

	out, err := json.Marshal(ids)
	require.NoError(t, err)
	assert.JSONEq(t, `[7, "abc"]`, string(out))
}

func TestCategoriesAndSuggestions(t *testing.T) {
	cat, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, []string{"cleanser", "makeup", "haircare"}, cat.Categories())
	assert.Equal(t, []string{"cleanser", "makeup", "haircare", "CeraVe", "L'Oréal Paris"}, cat.Suggestions(0))
	assert.Len(t, cat.Suggestions(2), 2)
}

func TestNilCatalog(t *testing.T) {
	var cat *Catalog
	assert.Equal(t, 0, cat.Len())
	assert.Nil(t, cat.Items())
	_, ok := cat.Get(NewID("1"))
	assert.False(t, ok)
}
