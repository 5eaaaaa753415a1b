package views

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

func FormatInt(v int) string {
	return strconv.Itoa(v)
}

// FormatPercent renders a percent value with at most two decimals.
func FormatPercent(v float64) string {
	return humanize.FtoaWithDigits(math.Round(v*100)/100, 2) + "%"
}

// FormatAmount renders a token amount rounded to whole units with
// thousands separators.
func FormatAmount(d decimal.Decimal) string {
	return humanize.BigComma(d.Round(0).BigInt())
}

func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatRelativeTime renders t relative to now ("3 days ago"). The zero time
// renders as "never".
func FormatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

func VaultsListURL(chainID int, query, category string, page int) string {
	values := url.Values{}
	if chainID > 0 {
		values.Set("chain_id", strconv.Itoa(chainID))
	}
	if query = strings.TrimSpace(query); query != "" {
		values.Set("q", query)
	}
	if category = strings.TrimSpace(category); category != "" {
		values.Set("category", category)
	}
	if page > 1 {
		values.Set("page", strconv.Itoa(page))
	}
	if len(values) == 0 {
		return "/vaults"
	}
	return "/vaults?" + values.Encode()
}

func VaultURL(chainID int, address string) string {
	return "/vaults/" + strconv.Itoa(chainID) + "/" + url.PathEscape(strings.TrimSpace(address))
}

func VaultStrategiesURL(chainID int, address, query string, hideZeroDebt bool) string {
	values := url.Values{}
	if query = strings.TrimSpace(query); query != "" {
		values.Set("q", query)
	}
	if hideZeroDebt {
		values.Set("hide_zero_debt", "1")
	} else {
		values.Set("hide_zero_debt", "0")
	}
	return VaultURL(chainID, address) + "?" + values.Encode()
}

func StrategyAPRURL(chainID int, vault, strategy string) string {
	return VaultURL(chainID, vault) + "/strategies/" + url.PathEscape(strings.TrimSpace(strategy)) + "/apr"
}

// elementID turns an address into a stable DOM id fragment.
func elementID(prefix, address string) string {
	return prefix + "-" + strings.ToLower(strings.TrimSpace(address))
}
