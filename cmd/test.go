package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection and credentials",
	Long: `Send one signed request for a single product to check that the store is
reachable and the API key may read products.`,
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to WooCommerce at %s...\n", cfg.Store.URL)

	pagination, err := client.Ping(cmd.Context())
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}

	fmt.Fprintln(out, "✓ Connection successful!")
	fmt.Fprintf(out, "\nStore Statistics:\n")
	fmt.Fprintf(out, "- Endpoint: %s\n", client.Endpoint())
	fmt.Fprintf(out, "- Total products (status %s): %d\n", cfg.Fetch.Status, pagination.TotalItems)

	return nil
}
