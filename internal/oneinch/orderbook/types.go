package orderbook

import "time"

// OrderData is the signed limit-order payload in the 1inch Limit Order
// Protocol shape.
type OrderData struct {
	Salt         string `json:"salt"`
	MakerAsset   string `json:"makerAsset"`
	TakerAsset   string `json:"takerAsset"`
	Maker        string `json:"maker"`
	Receiver     string `json:"receiver,omitempty"`
	MakingAmount string `json:"makingAmount"`
	TakingAmount string `json:"takingAmount"`
	MakerTraits  string `json:"makerTraits,omitempty"`
}

// CreateOrderRequest submits a signed limit order to the orderbook.
type CreateOrderRequest struct {
	OrderHash string    `json:"orderHash"`
	Signature string    `json:"signature"`
	Data      OrderData `json:"data"`
}

// CreateOrderResponse acknowledges a stored order.
type CreateOrderResponse struct {
	Success bool `json:"success"`
}

// Order is a stored limit order with its fill state.
type Order struct {
	OrderHash            string    `json:"orderHash"`
	Signature            string    `json:"signature"`
	CreateDateTime       time.Time `json:"createDateTime"`
	RemainingMakerAmount string    `json:"remainingMakerAmount"`
	OrderInvalidReason   *string   `json:"orderInvalidReason"`
	Data                 OrderData `json:"data"`
	MakerBalance         string    `json:"makerBalance,omitempty"`
	MakerAllowance       string    `json:"makerAllowance,omitempty"`
}

// ListParams pages and filters order listings.
type ListParams struct {
	Page       int
	Limit      int
	Statuses   string
	MakerAsset string
	TakerAsset string
}

// OrderCount is the count endpoint's answer.
type OrderCount struct {
	Count int `json:"count"`
}

// OrderEvent is one fill/cancel event on a stored order.
type OrderEvent struct {
	ID                   int64     `json:"id"`
	OrderHash            string    `json:"orderHash"`
	Action               string    `json:"action"`
	TakerAmount          string    `json:"takerAmount,omitempty"`
	RemainingMakerAmount string    `json:"remainingMakerAmount,omitempty"`
	TransactionHash      string    `json:"transactionHash,omitempty"`
	CreateDateTime       time.Time `json:"createDateTime"`
}
