package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/s0up4200/wcfetch/woocommerce"
)

func sampleListing() listing {
	return listing{
		Items: []woocommerce.Product{
			{
				"id":           json.Number("7"),
				"name":         "Mug",
				"price":        "12.50",
				"stock_status": "instock",
				"categories":   []any{map[string]any{"id": json.Number("3"), "name": "Kitchen"}},
			},
			{"id": json.Number("8"), "name": "Poster"},
		},
		Pagination: woocommerce.Pagination{TotalItems: 12, TotalPages: 6, CurrentPage: 2},
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml"} {
		assert.True(t, validFormat(f), f)
	}
	assert.False(t, validFormat("csv"))
	assert.False(t, validFormat(""))
}

func TestWriteListing_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeListing(&buf, formatText, sampleListing()))

	out := buf.String()
	assert.Contains(t, out, "Found 2 products:")
	assert.Contains(t, out, "• #7 Mug  12.50 [instock]")
	assert.Contains(t, out, "  Categories: Kitchen")
	assert.Contains(t, out, "• #8 Poster\n")
	assert.Contains(t, out, "Page 2 of 6, 12 products in store")
}

func TestWriteListing_TextAllPages(t *testing.T) {
	l := sampleListing()
	l.All = true

	var buf bytes.Buffer
	require.NoError(t, writeListing(&buf, formatText, l))
	assert.Contains(t, buf.String(), "All 6 pages, 12 products in store")
}

func TestWriteListing_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeListing(&buf, formatText, listing{}))
	assert.Contains(t, buf.String(), "No products found.")
}

func TestWriteListing_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeListing(&buf, formatJSON, sampleListing()))

	var decoded struct {
		Items      []map[string]any       `json:"items"`
		Pagination woocommerce.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Items, 2)
	assert.Equal(t, float64(7), decoded.Items[0]["id"])
	assert.Equal(t, "Mug", decoded.Items[0]["name"])
	assert.Equal(t, woocommerce.Pagination{TotalItems: 12, TotalPages: 6, CurrentPage: 2}, decoded.Pagination)
	assert.NotContains(t, buf.String(), "All")
}

func TestWriteListing_JSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeListing(&buf, formatJSON, listing{}))
	assert.Contains(t, buf.String(), `"items": []`)
}

func TestWriteListing_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeListing(&buf, formatYAML, sampleListing()))

	var decoded struct {
		Items      []map[string]any       `yaml:"items"`
		Pagination woocommerce.Pagination `yaml:"pagination"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Items, 2)
	assert.Equal(t, "Poster", decoded.Items[1]["name"])
	assert.Equal(t, 6, decoded.Pagination.TotalPages)
	assert.Equal(t, 2, decoded.Pagination.CurrentPage)
}

func TestWriteListing_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := writeListing(&buf, "csv", sampleListing())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv")
}
