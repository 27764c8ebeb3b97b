package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swaplens/swaplens/internal/observability"
	"github.com/swaplens/swaplens/internal/oneinch/swap"
	"github.com/swaplens/swaplens/internal/output"
)

var quoteCmd = &cobra.Command{
	Use:   "quote <src> <dst> <amount>",
	Short: "Get the best swap route for a token pair",
	Long: `Get the best route and expected output for swapping <amount> of token
<src> into token <dst>. The amount is a decimal string in the source
token's smallest unit (wei for 18-decimals tokens).`,
	Args: cobra.ExactArgs(3),
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.Flags().Bool("no-protocols", false, "omit the route split from the response")
}

func runQuote(cmd *cobra.Command, args []string) error {
	kit, err := newSDK()
	if err != nil {
		return err
	}

	noProtocols, _ := cmd.Flags().GetBool("no-protocols")
	params := swap.QuoteParams{
		Src:              args[0],
		Dst:              args[1],
		Amount:           args[2],
		IncludeProtocols: !noProtocols,
		IncludeGas:       true,
	}

	observability.Logger().Debug("requesting quote",
		zap.Int("chain", resolveChain()),
		zap.String("src", params.Src),
		zap.String("dst", params.Dst))

	quote, err := kit.Swap.Quote(cmd.Context(), params)
	if err != nil {
		return err
	}

	return render(output.QuoteTable(resolveChain(), params, quote), quote)
}
