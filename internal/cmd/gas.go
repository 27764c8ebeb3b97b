package cmd

import (
	"github.com/spf13/cobra"

	"github.com/swaplens/swaplens/internal/output"
)

var gasCmd = &cobra.Command{
	Use:   "gas",
	Short: "Show current gas fee tiers for the selected chain",
	RunE:  runGas,
}

func init() {
	rootCmd.AddCommand(gasCmd)
}

func runGas(cmd *cobra.Command, args []string) error {
	kit, err := newSDK()
	if err != nil {
		return err
	}

	chainID := resolveChain()
	gp, err := kit.Client.GasPrice(cmd.Context(), chainID)
	if err != nil {
		return err
	}

	return render(output.GasTable(chainID, gp), gp)
}
