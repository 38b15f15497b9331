package woocommerce

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// FetchPages fetches pages from..to (inclusive) concurrently, bounded by the
// client's concurrency, and returns them in page order. The first failure
// cancels the remaining requests and is returned; no partial result is kept.
// A range of more than MaxPages pages is rejected with ErrInvalidPageRange.
func (c *Client) FetchPages(ctx context.Context, from, to, perPage int) ([]*Page, error) {
	if from < 1 || to < from {
		return nil, fmt.Errorf("%w: %d..%d", ErrInvalidPageRange, from, to)
	}
	if to-from >= MaxPages {
		return nil, fmt.Errorf("%w: %d..%d exceeds %d pages", ErrInvalidPageRange, from, to, MaxPages)
	}

	pages := make([]*Page, to-from+1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i := range pages {
		i := i
		g.Go(func() error {
			page, err := c.FetchPage(ctx, from+i, perPage)
			if err != nil {
				return err
			}
			// Each goroutine owns its own slot.
			pages[i] = page
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// FetchAll fetches the first page, then every remaining page reported by
// X-WP-TotalPages. The returned Pagination is that of the first page. A store
// reporting more than MaxPages pages fails with KindUnexpectedPayload before
// any further request is made.
func (c *Client) FetchAll(ctx context.Context, perPage int) ([]Product, Pagination, error) {
	first, err := c.FetchPage(ctx, 1, perPage)
	if err != nil {
		return nil, Pagination{}, err
	}

	products := append([]Product(nil), first.Items...)
	if !first.Pagination.HasNext() {
		return products, first.Pagination, nil
	}

	if first.Pagination.TotalPages > MaxPages {
		return nil, Pagination{}, &FetchError{
			Kind:    KindUnexpectedPayload,
			Message: fmt.Sprintf("store reports %d pages, more than the %d allowed", first.Pagination.TotalPages, MaxPages),
		}
	}

	rest, err := c.FetchPages(ctx, 2, first.Pagination.TotalPages, perPage)
	if err != nil {
		return nil, Pagination{}, err
	}
	for _, page := range rest {
		products = append(products, page.Items...)
	}

	c.logger.Debug().
		Int("pages", first.Pagination.TotalPages).
		Int("products", len(products)).
		Msg("Fetched all product pages")

	return products, first.Pagination, nil
}

// Ping checks connectivity and credentials with a single one-item request
// and returns the store's pagination totals.
func (c *Client) Ping(ctx context.Context) (Pagination, error) {
	page, err := c.FetchPage(ctx, 1, 1)
	if err != nil {
		return Pagination{}, err
	}
	return page.Pagination, nil
}
