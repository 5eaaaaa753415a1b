package viewmodels

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vaultboard/vaultboard/internal/reports"
	"github.com/vaultboard/vaultboard/internal/vaults"
)

// TokenPlaceholder is replaced with the vault token symbol in strategy
// descriptions.
const TokenPlaceholder = "{{token}}"

// StrategyRow is the presented form of one strategy inside a vault.
type StrategyRow struct {
	ChainID               int             `json:"chain_id"`
	VaultAddress          string          `json:"vault_address"`
	Address               string          `json:"address"`
	Title                 string          `json:"title"`
	Description           string          `json:"description"`
	TokenSymbol           string          `json:"token_symbol"`
	CapitalAllocation     decimal.Decimal `json:"capital_allocation"`
	NetGain               decimal.Decimal `json:"net_gain"`
	AllocationPercent     float64         `json:"allocation_percent"`
	PerformanceFeePercent float64         `json:"performance_fee_percent"`
	// APR is the latest report APR as served by yDaemon, already a percent.
	APR            float64            `json:"apr"`
	LastReportUnix int64              `json:"last_report"`
	InQueue        bool               `json:"in_queue"`
	RiskScores     []vaults.RiskScore `json:"risk_scores"`
	// HistoricalAPR lists the APR of each report, oldest first.
	HistoricalAPR []reports.APRPoint `json:"historical_apr"`

	// APRPending marks rows whose APR was not cached at render time; the
	// page fetches them separately.
	APRPending bool `json:"-"`
}

// NewStrategyRow derives the display values of a strategy. Amounts are
// scaled by the vault decimals, the debt ratio (basis points) becomes a
// percent and the performance fee (fraction) becomes a percent.
func NewStrategyRow(chainID int, v vaults.Vault, s vaults.Strategy, apr float64) StrategyRow {
	symbol := v.TokenSymbol()
	return StrategyRow{
		ChainID:               chainID,
		VaultAddress:          v.Address,
		Address:               s.Address,
		Title:                 s.Title(),
		Description:           strings.ReplaceAll(s.Description, TokenPlaceholder, symbol),
		TokenSymbol:           symbol,
		CapitalAllocation:     vaults.Normalize(s.Details.TotalDebt, v.Decimals),
		NetGain:               vaults.Normalize(s.Details.NetGain(), v.Decimals),
		AllocationPercent:     s.Details.DebtRatioOrZero() / 100,
		PerformanceFeePercent: s.Details.PerformanceFeeOrZero() * 100,
		APR:                   apr,
		LastReportUnix:        s.Details.LastReport,
		InQueue:               s.Details.InQueue,
		RiskScores:            s.RiskScores(),
	}
}

// ApplyReports sets the latest and historical APR from the strategy
// reports. No reports means 0% and an empty history.
func (r *StrategyRow) ApplyReports(list []reports.Report) {
	r.APR = reports.LatestAPR(list)
	r.HistoricalAPR = reports.History(list)
	r.APRPending = false
}

// LastReport returns the time of the last harvest report, or the zero time
// when the strategy never reported.
func (r StrategyRow) LastReport() time.Time {
	if r.LastReportUnix <= 0 {
		return time.Time{}
	}
	return time.Unix(r.LastReportUnix, 0)
}

type VaultHeader struct {
	ChainID     int
	ChainName   string
	Address     string
	Title       string
	TokenSymbol string
	Category    string
}

type StrategiesViewData struct {
	Layout        LayoutData
	Vault         VaultHeader
	Rows          []StrategyRow
	Search        string
	HideZeroDebt  bool
	TotalCount    int
	EmptyStateMsg string
}
