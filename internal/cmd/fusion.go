package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swaplens/swaplens/internal/oneinch/fusion"
	"github.com/swaplens/swaplens/internal/output"
)

var fusionCmd = &cobra.Command{
	Use:   "fusion",
	Short: "Gasless swaps via Dutch-auction orders",
}

var fusionQuoteCmd = &cobra.Command{
	Use:   "quote <from-token> <to-token> <amount>",
	Short: "Get a Fusion quote with auction presets",
	Args:  cobra.ExactArgs(3),
	RunE:  runFusionQuote,
}

var fusionOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List active Fusion orders or check one order's status",
	RunE:  runFusionOrders,
}

func init() {
	rootCmd.AddCommand(fusionCmd)
	fusionCmd.AddCommand(fusionQuoteCmd)
	fusionCmd.AddCommand(fusionOrdersCmd)

	fusionQuoteCmd.Flags().String("wallet", "", "wallet address the order will be created for (required)")
	_ = fusionQuoteCmd.MarkFlagRequired("wallet")

	fusionOrdersCmd.Flags().String("hash", "", "check the status of this order instead of listing")
	fusionOrdersCmd.Flags().Bool("cross-chain", false, "list cross-chain orders")
	fusionOrdersCmd.Flags().Int("page", 1, "page number")
	fusionOrdersCmd.Flags().Int("limit", 20, "page size")
}

func runFusionQuote(cmd *cobra.Command, args []string) error {
	kit, err := newSDK()
	if err != nil {
		return err
	}

	wallet, _ := cmd.Flags().GetString("wallet")
	quote, err := kit.Fusion.Quote(cmd.Context(), fusion.QuoteParams{
		FromTokenAddress: args[0],
		ToTokenAddress:   args[1],
		Amount:           args[2],
		WalletAddress:    wallet,
	})
	if err != nil {
		return err
	}

	rendered, err := output.JSON(quote)
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}

func runFusionOrders(cmd *cobra.Command, args []string) error {
	kit, err := newSDK()
	if err != nil {
		return err
	}

	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")

	if hash, _ := cmd.Flags().GetString("hash"); hash != "" {
		status, err := kit.Fusion.OrderStatus(cmd.Context(), hash)
		if err != nil {
			return err
		}
		rendered, err := output.JSON(status)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	}

	var orders *fusion.ActiveOrdersPage
	if crossChain, _ := cmd.Flags().GetBool("cross-chain"); crossChain {
		orders, err = kit.FusionPlus.ActiveOrders(cmd.Context(), page, limit)
	} else {
		orders, err = kit.Fusion.ActiveOrders(cmd.Context(), page, limit)
	}
	if err != nil {
		return err
	}

	rendered, err := output.JSON(orders)
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}
