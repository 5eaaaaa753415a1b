// Package vaults holds the vault and strategy records served by yDaemon.
package vaults

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultTokenSymbol is shown when a vault carries no token symbol.
const DefaultTokenSymbol = "token"

type Token struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

type Vault struct {
	Address     string     `json:"address"`
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	Category    string     `json:"category"`
	Decimals    int        `json:"decimals"`
	Token       Token      `json:"token"`
	Strategies  []Strategy `json:"strategies"`
}

// Title returns the display name, falling back to the on-chain name.
func (v Vault) Title() string {
	if name := strings.TrimSpace(v.DisplayName); name != "" {
		return name
	}
	return strings.TrimSpace(v.Name)
}

func (v Vault) TokenSymbol() string {
	if symbol := strings.TrimSpace(v.Token.Symbol); symbol != "" {
		return symbol
	}
	return DefaultTokenSymbol
}

// FindStrategy looks a strategy up by address, ignoring checksum casing.
func (v Vault) FindStrategy(address string) (Strategy, bool) {
	address = strings.TrimSpace(address)
	for _, s := range v.Strategies {
		if strings.EqualFold(s.Address, address) {
			return s, true
		}
	}
	return Strategy{}, false
}

type Strategy struct {
	Address     string          `json:"address"`
	Name        string          `json:"name"`
	DisplayName string          `json:"displayName"`
	Description string          `json:"description"`
	Details     StrategyDetails `json:"details"`
	Risk        *StrategyRisk   `json:"risk,omitempty"`
}

func (s Strategy) Title() string {
	if name := strings.TrimSpace(s.DisplayName); name != "" {
		return name
	}
	return strings.TrimSpace(s.Name)
}

// StrategyDetails mirrors the yDaemon details record. Amounts are base-unit
// integers; DebtRatio is in basis points and PerformanceFee is a fraction.
type StrategyDetails struct {
	TotalDebt      decimal.Decimal `json:"totalDebt"`
	TotalGain      decimal.Decimal `json:"totalGain"`
	TotalLoss      decimal.Decimal `json:"totalLoss"`
	DebtRatio      *float64        `json:"debtRatio,omitempty"`
	PerformanceFee *float64        `json:"performanceFee,omitempty"`
	LastReport     int64           `json:"lastReport"`
	InQueue        bool            `json:"inQueue"`
}

// UnmarshalJSON reads amounts given as JSON numbers or numeric strings. An
// absent, null or empty amount decodes as zero.
func (d *StrategyDetails) UnmarshalJSON(data []byte) error {
	type plain StrategyDetails
	var wire struct {
		plain
		TotalDebt json.RawMessage `json:"totalDebt"`
		TotalGain json.RawMessage `json:"totalGain"`
		TotalLoss json.RawMessage `json:"totalLoss"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*d = StrategyDetails(wire.plain)

	var err error
	if d.TotalDebt, err = decodeAmount(wire.TotalDebt); err != nil {
		return fmt.Errorf("totalDebt: %w", err)
	}
	if d.TotalGain, err = decodeAmount(wire.TotalGain); err != nil {
		return fmt.Errorf("totalGain: %w", err)
	}
	if d.TotalLoss, err = decodeAmount(wire.TotalLoss); err != nil {
		return fmt.Errorf("totalLoss: %w", err)
	}
	return nil
}

func decodeAmount(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, err
		}
		if s = strings.TrimSpace(s); s == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(s)
	}
	return decimal.NewFromString(string(raw))
}

func (d StrategyDetails) DebtRatioOrZero() float64 {
	if d.DebtRatio == nil {
		return 0
	}
	return *d.DebtRatio
}

func (d StrategyDetails) PerformanceFeeOrZero() float64 {
	if d.PerformanceFee == nil {
		return 0
	}
	return *d.PerformanceFee
}

// NetGain is total gain minus total loss, in base units.
func (d StrategyDetails) NetGain() decimal.Decimal {
	return d.TotalGain.Sub(d.TotalLoss)
}

// Normalize scales a base-unit amount down by the given number of decimals.
func Normalize(amount decimal.Decimal, decimals int) decimal.Decimal {
	if decimals <= 0 {
		return amount
	}
	return amount.Shift(-int32(decimals))
}
