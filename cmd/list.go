package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/wcfetch/filter"
	"github.com/s0up4200/wcfetch/woocommerce"
)

var (
	listPage    int
	listPerPage int
	listAll     bool
	listOutput  string
	filterExprs []string

	filters = filter.NewCompiler(filter.DefaultCacheSize)
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Long: `List products from the store, one page at a time or all pages with --all.

Filters are expr expressions evaluated against each product, e.g.
  --filter 'stock_status == "instock" && num(price) < 20'
  --filter 'hasTag("sale") or inCategory("Hoodies")'
Repeated filters must all match.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVar(&listPage, "page", woocommerce.DefaultPage, "page to fetch")
	listCmd.Flags().IntVar(&listPerPage, "per-page", 0, "products per page (default from fetch.per_page)")
	listCmd.Flags().BoolVar(&listAll, "all", false, "fetch every page")
	listCmd.Flags().StringArrayVarP(&filterExprs, "filter", "f", nil, "filter expression (repeatable)")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", formatText, "output format: text, json or yaml")
}

func runList(cmd *cobra.Command, args []string) error {
	if !validFormat(listOutput) {
		return fmt.Errorf("invalid output format %q (must be text, json or yaml)", listOutput)
	}

	// Compile filters before any request is made
	compiled := make([]*filter.ExprFilter, 0, len(filterExprs))
	for _, expression := range filterExprs {
		f, err := filters.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		compiled = append(compiled, f)
	}

	perPage := cfg.Fetch.PerPage
	if cmd.Flags().Changed("per-page") {
		perPage = listPerPage
	}

	ctx := cmd.Context()

	var result listing
	if listAll {
		products, pagination, err := client.FetchAll(ctx, perPage)
		if err != nil {
			return err
		}
		result = listing{Items: products, Pagination: pagination, All: true}
	} else {
		page, err := client.FetchPage(ctx, listPage, perPage)
		if err != nil {
			return err
		}
		result = listing{Items: page.Items, Pagination: page.Pagination}
	}

	fetched := len(result.Items)
	for _, f := range compiled {
		matched, err := f.Apply(result.Items)
		if err != nil {
			logger.Warn().Err(err).Str("filter", f.String()).Msg("Some products could not be evaluated")
		}
		result.Items = matched
	}

	if len(compiled) > 0 {
		logger.Info().
			Int("fetched", fetched).
			Int("matched", len(result.Items)).
			Msg("Applied filters")
	}

	return writeListing(cmd.OutOrStdout(), listOutput, result)
}
