package fusion

// Preset names returned with every Fusion quote. Each preset trades auction
// duration against output amount.
const (
	PresetFast   = "fast"
	PresetMedium = "medium"
	PresetSlow   = "slow"
)

// QuoteParams shapes a Fusion (gasless, same-chain) quote request.
type QuoteParams struct {
	FromTokenAddress string
	ToTokenAddress   string
	Amount           string
	WalletAddress    string
	EnableEstimate   bool
}

// AuctionPoint is one step of the Dutch-auction price curve.
type AuctionPoint struct {
	Delay       int   `json:"delay"`
	Coefficient int64 `json:"coefficient"`
}

// Preset is one auction configuration offered with a quote.
type Preset struct {
	AuctionDuration    int            `json:"auctionDuration"`
	StartAuctionIn     int            `json:"startAuctionIn"`
	InitialRateBump    int64          `json:"initialRateBump"`
	AuctionStartAmount string         `json:"auctionStartAmount"`
	AuctionEndAmount   string         `json:"auctionEndAmount"`
	Points             []AuctionPoint `json:"points,omitempty"`
}

// Quote is a Fusion quote: output estimates plus the preset menu.
type Quote struct {
	QuoteID           string            `json:"quoteId"`
	FromTokenAmount   string            `json:"fromTokenAmount"`
	ToTokenAmount     string            `json:"toTokenAmount"`
	Presets           map[string]Preset `json:"presets"`
	RecommendedPreset string            `json:"recommended_preset"`
}

// OrderInput is the signed Fusion order payload.
type OrderInput struct {
	Order     map[string]any `json:"order"`
	Signature string         `json:"signature"`
	QuoteID   string         `json:"quoteId"`
}

// SubmitResponse acknowledges an accepted order.
type SubmitResponse struct {
	OrderHash string `json:"orderHash"`
}

// ActiveOrder is one order currently in auction.
type ActiveOrder struct {
	OrderHash            string `json:"orderHash"`
	Signature            string `json:"signature"`
	Deadline             int64  `json:"deadline"`
	AuctionStartDate     int64  `json:"auctionStartDate"`
	AuctionEndDate       int64  `json:"auctionEndDate"`
	RemainingMakerAmount string `json:"remainingMakerAmount"`
}

// ActiveOrdersPage is a paged active-orders listing.
type ActiveOrdersPage struct {
	Items []ActiveOrder `json:"items"`
	Meta  PageMeta      `json:"meta"`
}

// PageMeta carries listing pagination state.
type PageMeta struct {
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

// OrderStatus reports settlement progress for one order.
type OrderStatus struct {
	OrderHash string `json:"orderHash"`
	Status    string `json:"status"`
	Fills     []Fill `json:"fills,omitempty"`
}

// Fill is one resolver fill against an order.
type Fill struct {
	TxHash                   string `json:"txHash"`
	FilledMakerAmount        string `json:"filledMakerAmount"`
	FilledAuctionTakerAmount string `json:"filledAuctionTakerAmount"`
}

// CrossChainQuoteParams shapes a FusionPlus (cross-chain) quote request.
type CrossChainQuoteParams struct {
	SrcChain        int
	DstChain        int
	SrcTokenAddress string
	DstTokenAddress string
	Amount          string
	WalletAddress   string
	EnableEstimate  bool
}

// CrossChainQuote extends the Fusion quote with escrow settlement fields.
type CrossChainQuote struct {
	Quote
	SrcEscrowFactory string `json:"srcEscrowFactory,omitempty"`
	DstEscrowFactory string `json:"dstEscrowFactory,omitempty"`
	SrcSafetyDeposit string `json:"srcSafetyDeposit,omitempty"`
	DstSafetyDeposit string `json:"dstSafetyDeposit,omitempty"`
}
