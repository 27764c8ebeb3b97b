// Package cmd implements the swaplens command line interface.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swaplens/swaplens/internal/config"
	"github.com/swaplens/swaplens/internal/observability"
)

var (
	cfgFile    string
	verbose    bool
	chainFlag  int
	outputFlag string

	// Version info set by main package
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main package to set version information.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "swaplens",
	Short: "Typed client and MCP server for the 1inch aggregation APIs",
	Long: `swaplens is a typed client for the 1inch DeFi aggregation APIs and an
MCP server that exposes the same capabilities to AI agents.

An API key is required for all upstream calls. Set it in the config file,
or via SWAPLENS_API_KEY / ONEINCH_API_KEY.

Use the subcommands to perform specific operations.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	defer observability.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/swaplens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
	rootCmd.PersistentFlags().IntVar(&chainFlag, "chain", 0, "EVM chain ID (default from config)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "output format: table, json")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig loads the layered configuration and initializes the CLI logger.
func initConfig() {
	observability.InitCLILogger("swaplens", verbose)

	if _, err := config.Load(cfgFile); err != nil {
		ExitWithError("Failed to load configuration", err)
	}
}
