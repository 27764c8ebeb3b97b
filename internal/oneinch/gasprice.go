package oneinch

import (
	"context"
	"fmt"
)

// GasSpeed is one EIP-1559 fee tier.
type GasSpeed struct {
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas"`
	MaxFeePerGas         string `json:"maxFeePerGas"`
}

// GasPrice is the current fee market snapshot for one chain.
type GasPrice struct {
	BaseFee string   `json:"baseFee"`
	Low     GasSpeed `json:"low"`
	Medium  GasSpeed `json:"medium"`
	High    GasSpeed `json:"high"`
	Instant GasSpeed `json:"instant"`
}

// GasPrice fetches the current fee tiers for chainID. It lives on the base
// client because the endpoint takes no service-level parameters.
func (c *Client) GasPrice(ctx context.Context, chainID int) (*GasPrice, error) {
	var out GasPrice
	path := fmt.Sprintf("/gas-price/v1.5/%d", chainID)
	if err := c.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
