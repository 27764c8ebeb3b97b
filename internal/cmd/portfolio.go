package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swaplens/swaplens/internal/output"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio <address> [address...]",
	Short: "Show current USD portfolio value for one or more wallets",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPortfolio,
}

func init() {
	rootCmd.AddCommand(portfolioCmd)
	portfolioCmd.Flags().Bool("profit", false, "also show profit and loss")
	portfolioCmd.Flags().Bool("all-chains", false, "ignore --chain and aggregate across all chains")
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	kit, err := newSDK()
	if err != nil {
		return err
	}

	chainID := resolveChain()
	if allChains, _ := cmd.Flags().GetBool("all-chains"); allChains {
		chainID = 0
	}

	value, err := kit.Portfolio.CurrentValue(cmd.Context(), args, chainID)
	if err != nil {
		return err
	}

	result := map[string]any{"current_value": value}
	if withProfit, _ := cmd.Flags().GetBool("profit"); withProfit {
		profit, err := kit.Portfolio.Profit(cmd.Context(), args, chainID)
		if err != nil {
			return err
		}
		result["profit"] = profit
	}

	rendered, err := output.JSON(result)
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}
