package cmd

import (
	"fmt"

	"github.com/swaplens/swaplens/internal/config"
	"github.com/swaplens/swaplens/internal/observability"
	"github.com/swaplens/swaplens/internal/oneinch"
	"github.com/swaplens/swaplens/internal/output"
	"github.com/swaplens/swaplens/internal/sdk"
)

// newSDK builds the service facade from the loaded config and global flags.
func newSDK() (*sdk.SDK, error) {
	cfg := config.GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	kit, err := sdk.New(oneinch.Config{
		BaseURL: cfg.Client.BaseURL,
		APIKey:  cfg.Client.APIKey,
		Timeout: cfg.Client.Timeout,
		Logger:  observability.Logger(),
	}, resolveChain())
	if err != nil {
		return nil, err
	}
	return kit, nil
}

// resolveChain returns the --chain flag when set, otherwise the configured
// default chain.
func resolveChain() int {
	if chainFlag > 0 {
		return chainFlag
	}
	if cfg := config.GetConfig(); cfg != nil && cfg.Client.ChainID > 0 {
		return cfg.Client.ChainID
	}
	return oneinch.ChainEthereum
}

// resolveFormat returns the --output flag when set, otherwise the configured
// default format.
func resolveFormat() (output.Format, error) {
	value := outputFlag
	if value == "" {
		if cfg := config.GetConfig(); cfg != nil {
			value = cfg.Output.Format
		}
	}
	return output.ParseFormat(value)
}

// render prints v as JSON when the JSON format is selected, otherwise prints
// the prepared table.
func render(table string, v any) error {
	format, err := resolveFormat()
	if err != nil {
		return err
	}

	if format == output.FormatJSON {
		rendered, err := output.JSON(v)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	}

	fmt.Println(table)
	return nil
}
