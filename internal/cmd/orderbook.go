package cmd

import (
	"github.com/spf13/cobra"

	"github.com/swaplens/swaplens/internal/oneinch/orderbook"
	"github.com/swaplens/swaplens/internal/output"
)

var orderbookCmd = &cobra.Command{
	Use:   "orderbook",
	Short: "Inspect the limit order book",
}

var orderbookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List limit orders, optionally filtered to one maker",
	RunE:  runOrderbookList,
}

var orderbookGetCmd = &cobra.Command{
	Use:   "get <order-hash>",
	Short: "Show one limit order by hash",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderbookGet,
}

func init() {
	rootCmd.AddCommand(orderbookCmd)
	orderbookCmd.AddCommand(orderbookListCmd)
	orderbookCmd.AddCommand(orderbookGetCmd)

	orderbookListCmd.Flags().String("maker", "", "filter to orders made by this address")
	orderbookListCmd.Flags().Int("page", 1, "page number")
	orderbookListCmd.Flags().Int("limit", 20, "page size")
	orderbookListCmd.Flags().String("statuses", "", "comma-separated status filter")
}

func runOrderbookList(cmd *cobra.Command, args []string) error {
	kit, err := newSDK()
	if err != nil {
		return err
	}

	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")
	statuses, _ := cmd.Flags().GetString("statuses")
	params := orderbook.ListParams{Page: page, Limit: limit, Statuses: statuses}

	var orders []orderbook.Order
	if maker, _ := cmd.Flags().GetString("maker"); maker != "" {
		orders, err = kit.Orderbook.OrdersByAddress(cmd.Context(), maker, params)
	} else {
		orders, err = kit.Orderbook.AllOrders(cmd.Context(), params)
	}
	if err != nil {
		return err
	}

	return render(output.OrdersTable(orders), orders)
}

func runOrderbookGet(cmd *cobra.Command, args []string) error {
	kit, err := newSDK()
	if err != nil {
		return err
	}

	order, err := kit.Orderbook.OrderByHash(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return render(output.OrdersTable([]orderbook.Order{*order}), order)
}
