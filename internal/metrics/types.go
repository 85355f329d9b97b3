// Package metrics resolves canonical financial metrics from the noisy bag
// of tagged facts reported for one fiscal period. Each metric has an ordered
// waterfall of extraction strategies; the first fully satisfiable strategy
// wins regardless of value plausibility, because tier order encodes trust,
// not numeric agreement.
package metrics

import "github.com/caryschwartzstein/edgar-parser/internal/factstore"

// Metric identifies one canonical metric.
type Metric string

const (
	OperatingIncome          Metric = "operating_income"
	Revenue                  Metric = "revenue"
	NetIncome                Metric = "net_income"
	DepreciationAmortization Metric = "depreciation_amortization"
	OperatingCashFlow        Metric = "operating_cash_flow"
	CapitalExpenditure       Metric = "capital_expenditure"
	TotalDebt                Metric = "total_debt"
	UnrestrictedCash         Metric = "unrestricted_cash"
	TotalCash                Metric = "total_cash"
	TotalAssets              Metric = "total_assets"
	CurrentLiabilities       Metric = "current_liabilities"
	SharesOutstanding        Metric = "shares_outstanding"
)

// All lists every canonical metric in a stable order.
var All = []Metric{
	OperatingIncome,
	Revenue,
	NetIncome,
	DepreciationAmortization,
	OperatingCashFlow,
	CapitalExpenditure,
	TotalDebt,
	UnrestrictedCash,
	TotalCash,
	TotalAssets,
	CurrentLiabilities,
	SharesOutstanding,
}

// Cumulative reports whether the metric is income-statement-class, i.e.
// reported year-to-date in quarterly filings and subject to de-cumulation.
// Balance-sheet-class metrics are point-in-time snapshots and never are.
func (m Metric) Cumulative() bool {
	switch m {
	case OperatingIncome, Revenue, NetIncome, DepreciationAmortization,
		OperatingCashFlow, CapitalExpenditure:
		return true
	}
	return false
}

// Status is the validation status attached to a Result.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// ReasonNoFacts is the reason attached to a Result when no tier matched.
const ReasonNoFacts = "no matching facts"

// Result is the output of one tiered calculator for one period.
// A non-nil Value always carries a non-empty Strategy; a nil Value always
// carries a Reason.
type Result struct {
	Metric   Metric                    `json:"metric"`
	Value    *float64                  `json:"value"`
	Strategy string                    `json:"strategy,omitempty"`
	Tier     int                       `json:"tier,omitempty"` // 1 = most trusted
	Sources  map[string]factstore.Fact `json:"sources,omitempty"`
	Status   Status                    `json:"status"`
	Reason   string                    `json:"reason,omitempty"`
	Warnings []string                  `json:"warnings,omitempty"`
}

// Resolved reports whether the calculator produced a value.
func (r Result) Resolved() bool { return r.Value != nil }

// resolved builds a successful Result.
func resolved(m Metric, value float64, strategy string, tier int, sources map[string]factstore.Fact) Result {
	v := value
	return Result{
		Metric:   m,
		Value:    &v,
		Strategy: strategy,
		Tier:     tier,
		Sources:  sources,
		Status:   StatusPass,
	}
}

// unresolved builds the null Result for a metric with no satisfiable tier.
func unresolved(m Metric) Result {
	return Result{Metric: m, Status: StatusPass, Reason: ReasonNoFacts}
}

// Bundle holds the Results for all metrics of one period.
type Bundle map[Metric]Result

// Value returns the resolved value for a metric, or nil.
func (b Bundle) Value(m Metric) *float64 {
	if r, ok := b[m]; ok {
		return r.Value
	}
	return nil
}

// CalculateAll runs every tiered calculator over one period's facts.
func CalculateAll(pf factstore.PeriodFacts) Bundle {
	cash := CalcCash(pf)
	return Bundle{
		OperatingIncome:          CalcOperatingIncome(pf),
		Revenue:                  CalcRevenue(pf),
		NetIncome:                CalcNetIncome(pf),
		DepreciationAmortization: CalcDepreciationAmortization(pf),
		OperatingCashFlow:        CalcOperatingCashFlow(pf),
		CapitalExpenditure:       CalcCapitalExpenditure(pf),
		TotalDebt:                CalcTotalDebt(pf),
		UnrestrictedCash:         cash.Unrestricted,
		TotalCash:                cash.Total,
		TotalAssets:              CalcTotalAssets(pf),
		CurrentLiabilities:       CalcCurrentLiabilities(pf),
		SharesOutstanding:        CalcSharesOutstanding(pf),
	}
}
