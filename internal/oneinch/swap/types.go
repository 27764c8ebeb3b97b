package swap

// ProtocolStep is one hop of a routed swap: a protocol carrying part of the
// amount between two tokens.
type ProtocolStep struct {
	Name             string  `json:"name"`
	Part             float64 `json:"part"`
	FromTokenAddress string  `json:"fromTokenAddress"`
	ToTokenAddress   string  `json:"toTokenAddress"`
}

// Route is the nested protocol split returned by the aggregator:
// paths -> parallel splits -> steps.
type Route [][][]ProtocolStep

// QuoteParams shapes a quote request. Amounts are decimal strings in the
// source token's smallest unit, as the remote API requires.
type QuoteParams struct {
	Src              string
	Dst              string
	Amount           string
	Fee              string
	Protocols        string
	GasPrice         string
	IncludeGas       bool
	IncludeProtocols bool
}

// Quote is the aggregator's best-route answer for a token pair and amount.
type Quote struct {
	DstAmount string `json:"dstAmount"`
	Protocols Route  `json:"protocols,omitempty"`
	Gas       int64  `json:"gas,omitempty"`
}

// SwapParams shapes a swap-calldata request. Slippage is a percentage
// (0.5 means 0.5%).
type SwapParams struct {
	QuoteParams
	From     string
	Origin   string
	Slippage string
	Receiver string
}

// TxData is the raw transaction the caller signs and broadcasts.
type TxData struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Data     string `json:"data"`
	Value    string `json:"value"`
	Gas      int64  `json:"gas"`
	GasPrice string `json:"gasPrice"`
}

// SwapTx is a built swap: the expected output plus signable calldata.
type SwapTx struct {
	DstAmount string `json:"dstAmount"`
	Protocols Route  `json:"protocols,omitempty"`
	Tx        TxData `json:"tx"`
}

// Spender is the router contract that must be approved to move tokens.
type Spender struct {
	Address string `json:"address"`
}

// ApproveParams shapes an approval-calldata request. An empty Amount means
// unlimited approval.
type ApproveParams struct {
	TokenAddress string
	Amount       string
}

// ApproveTx is ERC-20 approval calldata for the router.
type ApproveTx struct {
	Data     string `json:"data"`
	GasPrice string `json:"gasPrice"`
	To       string `json:"to"`
	Value    string `json:"value"`
}

// ProtocolInfo describes one liquidity source known to the aggregator.
type ProtocolInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Img   string `json:"img,omitempty"`
}

// LiquiditySources lists the protocols the router can route through.
type LiquiditySources struct {
	Protocols []ProtocolInfo `json:"protocols"`
}
