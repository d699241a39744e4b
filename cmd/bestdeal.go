package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"kolikctl/internal/domain"
	"kolikctl/internal/output"
)

// bestDealCmd asks the comparison service which vendor is cheapest for
// a basket of product ids. The computation happens entirely remotely.
var bestDealCmd = &cobra.Command{
	Use:   "best-deal <product-id>...",
	Short: "Compare basket totals across vendors",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBestDeal,
}

func init() {
	rootCmd.AddCommand(bestDealCmd)
}

func runBestDeal(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", arg)
		}
		ids = append(ids, id)
	}

	if err := a.requireAuth(ctx, domain.RouteProducts); err != nil {
		return err
	}

	deal, err := a.catalog.BestDeal(ctx, ids)
	if err != nil {
		a.printer.Error("Comparing basket failed: %v", err)
		return err
	}

	vendors := make([]string, 0, len(deal.Totals))
	for vendor := range deal.Totals {
		vendors = append(vendors, vendor)
	}
	sort.Strings(vendors)

	table := output.NewTable([]string{"vendor", "total"})
	for _, vendor := range vendors {
		table.AddRow([]string{vendor, deal.Totals[vendor]})
	}
	table.Render()

	a.printer.Success("Best deal: %s at %s", a.printer.Bold(deal.Vendor), deal.Total)
	return nil
}
