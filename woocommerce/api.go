package woocommerce

import (
	"context"
	"time"
)

// ProductFetcher is what the presentation layer needs from the store.
type ProductFetcher interface {
	// FetchPage fetches a single page of published products
	FetchPage(ctx context.Context, page, perPage int) (*Page, error)
}

// PageRangeFetcher fetches several pages at once
type PageRangeFetcher interface {
	ProductFetcher

	// FetchPages fetches pages from..to inclusive, in order
	FetchPages(ctx context.Context, from, to, perPage int) ([]*Page, error)

	// FetchAll fetches every page of products
	FetchAll(ctx context.Context, perPage int) ([]Product, Pagination, error)
}

// Observer receives the outcome of every FetchPage call. outcome is
// "success" or the ErrorKind string; cancelled calls are not reported.
type Observer interface {
	ObserveFetch(outcome string, duration time.Duration, items int)
}

var _ PageRangeFetcher = (*Client)(nil)
