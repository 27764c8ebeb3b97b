package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/swaplens/swaplens/internal/output"
)

var balancesCmd = &cobra.Command{
	Use:   "balances <wallet> [wallet...]",
	Short: "Show token balances for one or more wallets",
	Long: `Show non-zero token balances for the given wallets on the selected
chain. Multiple wallets are fetched concurrently. With --spender, shows
the allowances the first wallet has granted to that contract instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBalances,
}

func init() {
	rootCmd.AddCommand(balancesCmd)
	balancesCmd.Flags().String("spender", "", "show allowances granted to this spender instead of balances")
}

func runBalances(cmd *cobra.Command, args []string) error {
	kit, err := newSDK()
	if err != nil {
		return err
	}

	if spender, _ := cmd.Flags().GetString("spender"); spender != "" {
		allowances, err := kit.Balance.Allowances(cmd.Context(), args[0], spender)
		if err != nil {
			return err
		}
		return render(output.BalancesTable(args[0], allowances), allowances)
	}

	if len(args) == 1 {
		balances, err := kit.Balance.Balances(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render(output.BalancesTable(args[0], balances), balances)
	}

	aggregated, err := kit.Balance.AggregatedBalances(cmd.Context(), args)
	if err != nil {
		return err
	}

	tables := make([]string, 0, len(aggregated))
	for _, wb := range aggregated {
		tables = append(tables, output.BalancesTable(wb.Wallet, wb.Balances))
	}
	return render(strings.Join(tables, "\n\n"), aggregated)
}
