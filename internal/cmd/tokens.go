package cmd

import (
	"github.com/spf13/cobra"

	"github.com/swaplens/swaplens/internal/oneinch/token"
	"github.com/swaplens/swaplens/internal/output"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List tokens known on the selected chain",
	RunE:  runTokens,
}

var tokensSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tokens by symbol or name",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokensSearch,
}

var tokensInfoCmd = &cobra.Command{
	Use:   "info <address>",
	Short: "Look up one token by contract address",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokensInfo,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.AddCommand(tokensSearchCmd)
	tokensCmd.AddCommand(tokensInfoCmd)

	tokensSearchCmd.Flags().Int("limit", 10, "max results")
}

func runTokens(cmd *cobra.Command, args []string) error {
	kit, err := newSDK()
	if err != nil {
		return err
	}

	tokens, err := kit.Token.Tokens(cmd.Context())
	if err != nil {
		return err
	}

	list := make([]token.Token, 0, len(tokens))
	for _, t := range tokens {
		list = append(list, t)
	}
	return render(output.TokensTable(list), tokens)
}

func runTokensSearch(cmd *cobra.Command, args []string) error {
	kit, err := newSDK()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	tokens, err := kit.Token.Search(cmd.Context(), token.SearchParams{
		Query: args[0],
		Limit: limit,
	})
	if err != nil {
		return err
	}

	return render(output.TokensTable(tokens), tokens)
}

func runTokensInfo(cmd *cobra.Command, args []string) error {
	kit, err := newSDK()
	if err != nil {
		return err
	}

	tok, err := kit.Token.Custom(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return render(output.TokensTable([]token.Token{*tok}), tok)
}
