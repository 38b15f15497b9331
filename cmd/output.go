package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/s0up4200/wcfetch/woocommerce"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// listing is what list prints
type listing struct {
	Items      []woocommerce.Product  `json:"items" yaml:"items"`
	Pagination woocommerce.Pagination `json:"pagination" yaml:"pagination"`
	// All is set when every page was fetched.
	All bool `json:"-" yaml:"-"`
}

func validFormat(format string) bool {
	switch format {
	case formatText, formatJSON, formatYAML:
		return true
	}
	return false
}

func writeListing(w io.Writer, format string, l listing) error {
	if l.Items == nil {
		l.Items = []woocommerce.Product{}
	}

	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatText:
		return writeText(w, l)
	}
	return fmt.Errorf("invalid output format %q", format)
}

func writeText(w io.Writer, l listing) error {
	if len(l.Items) == 0 {
		fmt.Fprintln(w, "No products found.")
	} else {
		fmt.Fprintf(w, "\nFound %d products:\n", len(l.Items))
		fmt.Fprintln(w, strings.Repeat("-", 80))
	}

	for _, p := range l.Items {
		fmt.Fprintf(w, "• #%d %s", p.ID(), p.Name())
		if price := p.String("price"); price != "" {
			fmt.Fprintf(w, "  %s", price)
		}
		if stock := p.String("stock_status"); stock != "" {
			fmt.Fprintf(w, " [%s]", stock)
		}
		fmt.Fprintln(w)
		if categories := p.Categories(); len(categories) > 0 {
			fmt.Fprintf(w, "  Categories: %s\n", strings.Join(categories, ", "))
		}
	}

	fmt.Fprintln(w)
	pg := l.Pagination
	if l.All {
		_, err := fmt.Fprintf(w, "All %d pages, %d products in store\n", pg.TotalPages, pg.TotalItems)
		return err
	}
	_, err := fmt.Fprintf(w, "Page %d of %d, %d products in store\n", pg.CurrentPage, pg.TotalPages, pg.TotalItems)
	return err
}
