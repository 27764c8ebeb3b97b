package cmd

import (
	"github.com/spf13/cobra"

	"github.com/swaplens/swaplens/internal/oneinch"
	"github.com/swaplens/swaplens/internal/output"
)

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List supported networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		chains := oneinch.SupportedChains()
		return render(output.ChainsTable(chains), chains)
	},
}

func init() {
	rootCmd.AddCommand(chainsCmd)
}
