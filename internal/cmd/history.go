package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swaplens/swaplens/internal/oneinch/history"
	"github.com/swaplens/swaplens/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history <address>",
	Short: "Show transaction history for a wallet, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "max events")
	historyCmd.Flags().Bool("all-chains", false, "ignore --chain and list events across all chains")
}

func runHistory(cmd *cobra.Command, args []string) error {
	kit, err := newSDK()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	chainID := resolveChain()
	if allChains, _ := cmd.Flags().GetBool("all-chains"); allChains {
		chainID = 0
	}

	events, err := kit.History.Events(cmd.Context(), args[0], history.Params{
		Limit:   limit,
		ChainID: chainID,
	})
	if err != nil {
		return err
	}

	rendered, err := output.JSON(events)
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}
