// Package woocommerce provides a client for the WooCommerce REST API products
// listing.
//
// Requests are authenticated with one-legged OAuth 1.0 query-string signing
// (see package oauth), so the consumer secret never leaves the process.
//
// # Usage
//
//	client, err := woocommerce.NewClient(woocommerce.Credentials{
//		StoreURL:       "https://shop.example",
//		ConsumerKey:    "ck_...",
//		ConsumerSecret: "cs_...",
//	}, logger, woocommerce.WithTimeout(15*time.Second))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.FetchPage(ctx, 1, 10)
//	if err != nil {
//		var fe *woocommerce.FetchError
//		if errors.As(err, &fe) && fe.IsPermissionDenied() {
//			// the key lacks read access
//		}
//		return err
//	}
//
// # Error Handling
//
// A failed fetch returns a *FetchError whose Kind is one of:
//
//   - KindNetwork: DNS, connection, TLS or timeout failure
//   - KindHTTP: the store answered with status >= 400
//   - KindAPI: a WooCommerce error object arrived with a non-error status
//   - KindDecode: the body is not valid JSON
//   - KindUnexpectedPayload: valid JSON that is neither a list nor an error object
//
// Cancelling the context returns ctx.Err() instead. The client never retries.
package woocommerce
