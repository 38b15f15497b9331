// Package oauth implements the one-legged OAuth 1.0 request signing used by
// the WooCommerce REST API over plain HTTP.
//
// Only the consumer credentials take part: the token secret is always empty
// and no request-token or access-token exchange is performed.
//
// # Usage
//
//	signer := oauth.NewSigner("ck_...", "cs_...")
//	params := url.Values{"page": {"1"}, "per_page": {"10"}}
//	req, err := signer.BuildSignedURL(http.MethodGet, "https://shop.example/wp-json/wc/v3/products", params)
//	if err != nil {
//		return err
//	}
//	// req.URL carries the oauth_* parameters and oauth_signature.
//
// The signature base string uses strict RFC 3986 encoding (see Encode) while
// the final query string uses standard form encoding, as the server expects.
package oauth
