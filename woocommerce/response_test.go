package woocommerce

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate([]byte("short"), 10))
	assert.Equal(t, "abc...", truncate([]byte("abcdef"), 3))

	// Never cut inside a multi-byte rune.
	got := truncate([]byte(strings.Repeat("é", 10)), 5)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "éé...", got)
}

func TestHeaderInt(t *testing.T) {
	h := http.Header{}
	h.Set("X-WP-Total", "17")
	h.Set("X-WP-TotalPages", "abc")

	assert.Equal(t, 17, headerInt(h, "x-wp-total"))
	assert.Equal(t, 0, headerInt(h, HeaderTotalPages))
	assert.Equal(t, 0, headerInt(h, "X-Missing"))
}

func TestParseResponse_KeepsNumbersExact(t *testing.T) {
	raw := rawResponse{
		status: http.StatusOK,
		header: http.Header{},
		body:   []byte(`[{"id":9007199254740993,"price":"19.99","regular_price":19.990}]`),
	}

	page, err := parseResponse(raw, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(9007199254740993), page.Items[0].ID())
	assert.Equal(t, json.Number("19.990"), page.Items[0]["regular_price"])
	assert.Equal(t, "19.99", page.Items[0].String("price"))
}

func TestParseResponse_HTTPErrorWinsOverPayload(t *testing.T) {
	raw := rawResponse{
		status: http.StatusUnauthorized,
		header: http.Header{},
		body:   []byte(`[]`),
	}

	_, err := parseResponse(raw, 1)
	assert.Equal(t, KindHTTP, KindOf(err))
}

func TestProductHelpers(t *testing.T) {
	p := Product{
		"id":   json.Number("5"),
		"name": "Hoodie",
		"categories": []any{
			map[string]any{"id": json.Number("1"), "name": "Clothing"},
			map[string]any{"id": json.Number("2"), "name": "Hoodies"},
		},
		"tags":  []any{map[string]any{"name": "sale"}, "bogus"},
		"price": json.Number("42"),
	}

	assert.Equal(t, int64(5), p.ID())
	assert.Equal(t, "Hoodie", p.Name())
	assert.Equal(t, "42", p.String("price"))
	assert.Equal(t, "", p.String("missing"))
	assert.Equal(t, []string{"Clothing", "Hoodies"}, p.Categories())
	assert.Equal(t, []string{"sale"}, p.Tags())
	assert.Equal(t, int64(0), Product{"id": "abc"}.ID())
}

func TestPagination(t *testing.T) {
	p := Pagination{TotalPages: 3, CurrentPage: 2}
	assert.True(t, p.HasNext())
	next, err := p.NextPage()
	require.NoError(t, err)
	assert.Equal(t, 3, next)

	p.CurrentPage = 3
	assert.False(t, p.HasNext())
	_, err = p.NextPage()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no more pages")
}

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{KindNetwork, "network"},
		{KindHTTP, "http_error"},
		{KindAPI, "api_error"},
		{KindDecode, "decode_error"},
		{KindUnexpectedPayload, "unexpected_payload"},
		{KindUnknown, "unknown"},
		{ErrorKind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestFetchError(t *testing.T) {
	err := &FetchError{Kind: KindHTTP, StatusCode: 403, Code: PermissionDeniedCode, Message: "403: denied"}
	assert.Equal(t, "woocommerce http_error: 403: denied", err.Error())
	assert.True(t, err.IsUnauthorized())
	assert.True(t, err.IsPermissionDenied())
	assert.False(t, err.IsNotFound())

	assert.True(t, (&FetchError{StatusCode: 404}).IsNotFound())
	assert.Equal(t, KindUnknown, KindOf(assert.AnError))
}

func TestCredentials_StringRedactsSecret(t *testing.T) {
	c := Credentials{StoreURL: "https://shop.example", ConsumerKey: "ck_1", ConsumerSecret: "cs_hidden"}
	assert.NotContains(t, c.String(), "cs_hidden")
	assert.Contains(t, c.String(), "ck_1")
}
