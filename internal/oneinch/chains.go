package oneinch

// Chain IDs supported by the aggregation API.
const (
	ChainEthereum  = 1
	ChainOptimism  = 10
	ChainBNB       = 56
	ChainGnosis    = 100
	ChainPolygon   = 137
	ChainFantom    = 250
	ChainZkSyncEra = 324
	ChainBase      = 8453
	ChainArbitrum  = 42161
	ChainAvalanche = 43114
)

// ChainInfo names one supported network.
type ChainInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SupportedChains lists the networks the SDK targets, in chain-ID order.
func SupportedChains() []ChainInfo {
	return []ChainInfo{
		{ID: ChainEthereum, Name: "Ethereum"},
		{ID: ChainOptimism, Name: "Optimism"},
		{ID: ChainBNB, Name: "BNB Chain"},
		{ID: ChainGnosis, Name: "Gnosis"},
		{ID: ChainPolygon, Name: "Polygon"},
		{ID: ChainFantom, Name: "Fantom"},
		{ID: ChainZkSyncEra, Name: "zkSync Era"},
		{ID: ChainBase, Name: "Base"},
		{ID: ChainArbitrum, Name: "Arbitrum One"},
		{ID: ChainAvalanche, Name: "Avalanche"},
	}
}

// ChainName returns the display name for a chain ID, empty when unknown.
func ChainName(id int) string {
	for _, chain := range SupportedChains() {
		if chain.ID == id {
			return chain.Name
		}
	}
	return ""
}
