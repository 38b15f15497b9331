package cmd

import (
	"errors"

	"github.com/s0up4200/wcfetch/woocommerce"
)

// errorHint suggests a fix for common fetch failures
func errorHint(err error) string {
	var fe *woocommerce.FetchError
	if !errors.As(err, &fe) {
		return ""
	}

	switch {
	case fe.IsPermissionDenied():
		return "Hint: the API key cannot read products. In WooCommerce > Settings > Advanced > REST API, " +
			"give the key Read or Read/Write permission."
	case fe.IsUnauthorized():
		return "Hint: check store.consumer_key and store.consumer_secret."
	case fe.IsNotFound():
		return "Hint: the REST API was not found. Check store.url and that permalinks are enabled."
	case fe.Kind == woocommerce.KindNetwork:
		return "Hint: check store.url and that the store is reachable."
	case fe.Kind == woocommerce.KindDecode, fe.Kind == woocommerce.KindUnexpectedPayload:
		return "Hint: the store did not answer with WooCommerce JSON. A security plugin or cache may be intercepting the request."
	}
	return ""
}
