package sdk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swaplens/swaplens/internal/oneinch"
)

func TestNewFailsFastWithoutKey(t *testing.T) {
	t.Setenv("SWAPLENS_API_KEY", "")
	t.Setenv("ONEINCH_API_KEY", "")
	t.Setenv("ONE_INCH_API_KEY", "")

	_, err := New(oneinch.Config{}, oneinch.ChainEthereum)
	require.ErrorIs(t, err, oneinch.ErrAPIKeyMissing)
}

func TestNewWiresAllServices(t *testing.T) {
	s, err := New(oneinch.Config{APIKey: "key"}, oneinch.ChainArbitrum)
	require.NoError(t, err)

	require.NotNil(t, s.Client)
	require.NotNil(t, s.Swap)
	require.NotNil(t, s.Orderbook)
	require.NotNil(t, s.Fusion)
	require.NotNil(t, s.FusionPlus)
	require.NotNil(t, s.Token)
	require.NotNil(t, s.Balance)
	require.NotNil(t, s.History)
	require.NotNil(t, s.Portfolio)
	require.Equal(t, oneinch.ChainArbitrum, s.ChainID())
	require.Equal(t, oneinch.ChainArbitrum, s.Swap.ChainID())
}

func TestNewDefaultsToEthereum(t *testing.T) {
	s, err := New(oneinch.Config{APIKey: "key"}, 0)
	require.NoError(t, err)
	require.Equal(t, oneinch.ChainEthereum, s.ChainID())
}
