package woocommerce

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Pagination response headers.
const (
	HeaderTotal      = "X-WP-Total"
	HeaderTotalPages = "X-WP-TotalPages"
)

// rawResponse is what the transport produced for one call.
type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

// apiErrorPayload is the WooCommerce error object.
type apiErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// parseResponse classifies a response into a Page or a *FetchError.
func parseResponse(raw rawResponse, page int) (*Page, error) {
	if raw.status >= http.StatusBadRequest {
		fe := &FetchError{
			Kind:       KindHTTP,
			StatusCode: raw.status,
			Message:    fmt.Sprintf("%d: %s", raw.status, truncate(raw.body, maxErrorBody)),
		}
		var payload apiErrorPayload
		if json.Unmarshal(raw.body, &payload) == nil {
			fe.Code = payload.Code
		}
		return nil, fe
	}

	if len(raw.body) > maxBodyBytes {
		return nil, &FetchError{
			Kind:       KindDecode,
			StatusCode: raw.status,
			Message:    fmt.Sprintf("response body exceeds %d bytes", maxBodyBytes),
		}
	}

	pagination := parsePagination(raw.header, page)

	value, err := decodeJSON(raw.body)
	if err != nil {
		return nil, &FetchError{Kind: KindDecode, StatusCode: raw.status, Message: err.Error(), Err: err}
	}

	switch v := value.(type) {
	case []any:
		items := make([]Product, 0, len(v))
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, unexpectedPayload(raw.status)
			}
			items = append(items, Product(obj))
		}
		return &Page{Items: items, Pagination: pagination}, nil

	case map[string]any:
		code, _ := v["code"].(string)
		message, _ := v["message"].(string)
		if code == "" && message == "" {
			return nil, unexpectedPayload(raw.status)
		}
		if message == "" {
			message = code
		}
		return nil, &FetchError{Kind: KindAPI, StatusCode: raw.status, Code: code, Message: message}
	}

	return nil, unexpectedPayload(raw.status)
}

func unexpectedPayload(status int) *FetchError {
	return &FetchError{Kind: KindUnexpectedPayload, StatusCode: status, Message: "unexpected response shape"}
}

// decodeJSON decodes exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty response body")
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid JSON: unexpected data after top-level value")
	}
	return v, nil
}

// parsePagination reads the pagination headers. Header lookup is
// case-insensitive; missing, negative or non-numeric values become 0.
func parsePagination(h http.Header, page int) Pagination {
	return Pagination{
		TotalItems:  headerInt(h, HeaderTotal),
		TotalPages:  headerInt(h, HeaderTotalPages),
		CurrentPage: page,
	}
}

func headerInt(h http.Header, key string) int {
	v := strings.TrimSpace(h.Get(key))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// truncate returns at most n bytes of b without splitting a UTF-8 sequence.
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	for n > 0 && !utf8.RuneStart(b[n]) {
		n--
	}
	return string(b[:n]) + "..."
}
