package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swaplens/swaplens/internal/config"
	"github.com/swaplens/swaplens/internal/output"
)

func loadTestConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	_, err := config.Load("")
	require.NoError(t, err)
}

func TestResolveChain(t *testing.T) {
	loadTestConfig(t)

	chainFlag = 0
	t.Cleanup(func() { chainFlag = 0 })
	assert.Equal(t, 1, resolveChain(), "config default chain wins without a flag")

	chainFlag = 137
	assert.Equal(t, 137, resolveChain(), "flag overrides the config")
}

func TestResolveFormat(t *testing.T) {
	loadTestConfig(t)

	outputFlag = ""
	t.Cleanup(func() { outputFlag = "" })
	format, err := resolveFormat()
	require.NoError(t, err)
	assert.Equal(t, output.FormatTable, format)

	outputFlag = "json"
	format, err = resolveFormat()
	require.NoError(t, err)
	assert.Equal(t, output.FormatJSON, format)

	outputFlag = "csv"
	_, err = resolveFormat()
	require.Error(t, err)
}

func TestNewSDKRequiresAPIKey(t *testing.T) {
	loadTestConfig(t)

	// No key in config and none in the environment.
	t.Setenv("SWAPLENS_API_KEY", "")
	t.Setenv("ONEINCH_API_KEY", "")
	t.Setenv("ONE_INCH_API_KEY", "")

	_, err := newSDK()
	require.Error(t, err)
}
