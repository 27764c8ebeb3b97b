package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swaplens/swaplens/internal/oneinch/swap"
	"github.com/swaplens/swaplens/internal/output"
)

var swapCmd = &cobra.Command{
	Use:   "swap <src> <dst> <amount>",
	Short: "Build signable swap calldata",
	Long: `Build the transaction calldata for swapping <amount> of token <src> into
token <dst>. Nothing is signed or broadcast; the output is the raw
transaction for the --from wallet to sign.`,
	Args: cobra.ExactArgs(3),
	RunE: runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)
	swapCmd.Flags().String("from", "", "wallet address that will sign the transaction (required)")
	swapCmd.Flags().String("slippage", "1", "max slippage percent")
	swapCmd.Flags().String("receiver", "", "recipient of the output tokens (default: the sender)")
	_ = swapCmd.MarkFlagRequired("from")
}

func runSwap(cmd *cobra.Command, args []string) error {
	kit, err := newSDK()
	if err != nil {
		return err
	}

	from, _ := cmd.Flags().GetString("from")
	slippage, _ := cmd.Flags().GetString("slippage")
	receiver, _ := cmd.Flags().GetString("receiver")
	if from == "" {
		return fmt.Errorf("--from is required")
	}

	tx, err := kit.Swap.Swap(cmd.Context(), swap.SwapParams{
		QuoteParams: swap.QuoteParams{Src: args[0], Dst: args[1], Amount: args[2]},
		From:        from,
		Slippage:    slippage,
		Receiver:    receiver,
	})
	if err != nil {
		return err
	}

	return render(output.SwapTable(resolveChain(), tx), tx)
}
