package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kolikctl/internal/domain"
	"kolikctl/internal/output"
)

// productsCmd lists the catalog. The route is protected: it requires
// an authenticated session.
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the product catalog",
	RunE:  runProducts,
}

// productCmd shows one product with its per-vendor prices.
var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show a product and its vendor prices",
	Args:  cobra.ExactArgs(1),
	RunE:  runProduct,
}

func init() {
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(productCmd)
}

func runProducts(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := a.requireAuth(ctx, domain.RouteProducts); err != nil {
		return err
	}

	products, err := a.catalog.Products(ctx)
	if err != nil {
		a.printer.Error("Fetching products failed: %v", err)
		return err
	}

	table := output.NewTable([]string{"id", "name", "category", "unit"})
	for _, p := range products {
		table.AddRow([]string{strconv.FormatInt(p.ID, 10), p.Name, p.Category, p.Unit})
	}
	table.Render()
	return nil
}

func runProduct(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}

	if err := a.requireAuth(ctx, domain.RouteProducts); err != nil {
		return err
	}

	product, err := a.catalog.Product(ctx, id)
	if err != nil {
		a.printer.Error("Fetching product failed: %v", err)
		return err
	}

	a.printer.Print("%s (%s, per %s)", a.printer.Bold(product.Name), product.Category, product.Unit)

	table := output.NewTable([]string{"vendor", "price"})
	for _, vp := range product.Prices {
		table.AddRow([]string{vp.Vendor, vp.Price})
	}
	table.Render()
	return nil
}
