package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/swaplens/swaplens/internal/core"
	"github.com/swaplens/swaplens/internal/oneinch"
	"github.com/swaplens/swaplens/internal/oneinch/balance"
	"github.com/swaplens/swaplens/internal/oneinch/orderbook"
	"github.com/swaplens/swaplens/internal/oneinch/swap"
	"github.com/swaplens/swaplens/internal/oneinch/token"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

// QuoteTable renders a quote with its route split.
func QuoteTable(chainID int, params swap.QuoteParams, quote *swap.Quote) string {
	if quote == nil {
		return ""
	}

	t := newTable()
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"Chain", chainLabel(chainID)})
	t.AppendRow(table.Row{"From", params.Src})
	t.AppendRow(table.Row{"To", params.Dst})
	t.AppendRow(table.Row{"Amount In", params.Amount})
	t.AppendRow(table.Row{"Amount Out", quote.DstAmount})
	if quote.Gas > 0 {
		t.AppendRow(table.Row{"Est. Gas", quote.Gas})
	}
	if route := routeSummary(quote.Protocols); route != "" {
		t.AppendRow(table.Row{"Route", route})
	}
	return t.Render()
}

// SwapTable renders built swap calldata alongside the expected output.
func SwapTable(chainID int, tx *swap.SwapTx) string {
	if tx == nil {
		return ""
	}

	t := newTable()
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"Chain", chainLabel(chainID)})
	t.AppendRow(table.Row{"Amount Out", tx.DstAmount})
	t.AppendRow(table.Row{"To", tx.Tx.To})
	t.AppendRow(table.Row{"Value", tx.Tx.Value})
	t.AppendRow(table.Row{"Gas", tx.Tx.Gas})
	t.AppendRow(table.Row{"Gas Price", tx.Tx.GasPrice})
	t.AppendRow(table.Row{"Calldata", truncate(tx.Tx.Data, 66)})
	return t.Render()
}

// TokensTable renders token metadata sorted by symbol.
func TokensTable(tokens []token.Token) string {
	t := newTable()
	t.AppendHeader(table.Row{"Symbol", "Name", "Decimals", "Address"})

	sorted := make([]token.Token, len(tokens))
	copy(sorted, tokens)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Symbol < sorted[j].Symbol })

	for _, tok := range sorted {
		t.AppendRow(table.Row{tok.Symbol, tok.Name, tok.Decimals, tok.Address})
	}
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d tokens", len(sorted))})
	return t.Render()
}

// BalancesTable renders non-zero balances for one wallet, sorted by token
// address for stable output.
func BalancesTable(wallet string, balances balance.Balances) string {
	t := newTable()
	t.SetTitle(wallet)
	t.AppendHeader(table.Row{"Token", "Balance"})

	addrs := make([]string, 0, len(balances))
	for addr, amount := range balances {
		if amount == "0" || amount == "" {
			continue
		}
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	for _, addr := range addrs {
		t.AppendRow(table.Row{addr, balances[addr]})
	}
	return t.Render()
}

// OrdersTable renders stored limit orders.
func OrdersTable(orders []orderbook.Order) string {
	t := newTable()
	t.AppendHeader(table.Row{"Hash", "Maker Asset", "Taker Asset", "Making", "Remaining", "Created"})

	for _, o := range orders {
		t.AppendRow(table.Row{
			truncate(o.OrderHash, 18),
			truncate(o.Data.MakerAsset, 14),
			truncate(o.Data.TakerAsset, 14),
			o.Data.MakingAmount,
			o.RemainingMakerAmount,
			o.CreateDateTime.Format("2006-01-02 15:04"),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", fmt.Sprintf("%d orders", len(orders))})
	return t.Render()
}

// GasTable renders the fee market snapshot for one chain.
func GasTable(chainID int, gp *oneinch.GasPrice) string {
	if gp == nil {
		return ""
	}

	t := newTable()
	t.SetTitle(fmt.Sprintf("%s gas (base fee %s)", chainLabel(chainID), gp.BaseFee))
	t.AppendHeader(table.Row{"Speed", "Max Fee", "Max Priority Fee"})
	t.AppendRow(table.Row{"low", gp.Low.MaxFeePerGas, gp.Low.MaxPriorityFeePerGas})
	t.AppendRow(table.Row{"medium", gp.Medium.MaxFeePerGas, gp.Medium.MaxPriorityFeePerGas})
	t.AppendRow(table.Row{"high", gp.High.MaxFeePerGas, gp.High.MaxPriorityFeePerGas})
	t.AppendRow(table.Row{"instant", gp.Instant.MaxFeePerGas, gp.Instant.MaxPriorityFeePerGas})
	return t.Render()
}

// ChainsTable renders the supported networks.
func ChainsTable(chains []oneinch.ChainInfo) string {
	t := newTable()
	t.AppendHeader(table.Row{"Chain ID", "Name"})
	for _, c := range chains {
		t.AppendRow(table.Row{c.ID, c.Name})
	}
	return t.Render()
}

// HealthTable renders an aggregate health snapshot with per-probe rows.
func HealthTable(snap core.Snapshot) string {
	t := newTable()
	t.SetTitle(fmt.Sprintf("status: %s, uptime: %s", snap.Status, snap.Uptime))
	t.AppendHeader(table.Row{"Check", "State"})

	names := make([]string, 0, len(snap.Checks))
	for name := range snap.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t.AppendRow(table.Row{name, snap.Checks[name]})
	}
	t.AppendFooter(table.Row{"requests", fmt.Sprintf("%d total, %d failed", snap.TotalRequests, snap.FailedRequests)})
	return t.Render()
}

// routeSummary flattens the nested protocol split into a readable line like
// "UNISWAP_V3 60% + SUSHI 40%".
func routeSummary(route swap.Route) string {
	parts := []string{}
	for _, path := range route {
		for _, split := range path {
			for _, step := range split {
				parts = append(parts, fmt.Sprintf("%s %.0f%%", step.Name, step.Part))
			}
		}
	}
	return strings.Join(parts, " + ")
}

func chainLabel(chainID int) string {
	if name := oneinch.ChainName(chainID); name != "" {
		return fmt.Sprintf("%s (%d)", name, chainID)
	}
	return fmt.Sprintf("chain %d", chainID)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
