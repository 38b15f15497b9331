package woocommerce

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Credentials identify a store and the REST API key pair used to sign
// requests. The value is immutable once handed to a Client.
type Credentials struct {
	StoreURL       string
	ConsumerKey    string
	ConsumerSecret string
}

// String never includes the consumer secret.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{store: %s, consumer_key: %s, consumer_secret: [REDACTED]}", c.StoreURL, c.ConsumerKey)
}

// PageRequest selects one page of the product listing.
type PageRequest struct {
	Page    int
	PerPage int
}

// normalize applies the defaults for absent (zero or negative) values.
func (r PageRequest) normalize() PageRequest {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.PerPage < 1 {
		r.PerPage = DefaultPerPage
	}
	return r
}

// Product is an opaque product record as returned by the store. Numbers are
// kept as json.Number so no precision is lost.
type Product map[string]any

// ID returns the product id, or 0 if it is missing or not an integer.
func (p Product) ID() int64 {
	switch v := p["id"].(type) {
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0
		}
		return id
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	}
	return 0
}

// Name returns the product name.
func (p Product) Name() string {
	return p.String("name")
}

// String returns the field as a string. Numbers are formatted, other types
// yield "".
func (p Product) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}
	return ""
}

// Categories returns the names of the product categories.
func (p Product) Categories() []string {
	return p.names("categories")
}

// Tags returns the names of the product tags.
func (p Product) Tags() []string {
	return p.names("tags")
}

func (p Product) names(key string) []string {
	list, ok := p[key].([]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := obj["name"].(string); ok && strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	return names
}

// Pagination is the page metadata taken from the X-WP-Total and
// X-WP-TotalPages response headers.
type Pagination struct {
	TotalItems  int `json:"total_items" yaml:"total_items"`
	TotalPages  int `json:"total_pages" yaml:"total_pages"`
	CurrentPage int `json:"current_page" yaml:"current_page"`
}

// HasNext reports whether a page follows the current one.
func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// NextPage returns the next page number, or an error if there are no more pages
func (p Pagination) NextPage() (int, error) {
	if !p.HasNext() {
		return 0, fmt.Errorf("no more pages available")
	}
	return p.CurrentPage + 1, nil
}

// Page is a successful fetch: the products in server order plus pagination.
type Page struct {
	Items      []Product  `json:"items" yaml:"items"`
	Pagination Pagination `json:"pagination" yaml:"pagination"`
}
