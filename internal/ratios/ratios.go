// Package ratios derives secondary ratios from validated metric results.
// Every ratio carries its formula identifier and the exact component values
// used, so a stored ratio can be audited without re-deriving from raw facts.
package ratios

import (
	"fmt"
	"sort"
	"strings"
)

// Formula identifiers.
const (
	FormulaROCE          = "roce = operating_income / (total_assets - current_liabilities)"
	FormulaNetDebt       = "net_debt = total_debt - unrestricted_cash"
	FormulaEV            = "enterprise_value = market_cap + net_debt"
	FormulaEarningsYield = "earnings_yield = operating_income / enterprise_value"
	FormulaFCF           = "free_cash_flow = operating_cash_flow - capital_expenditure"
	FormulaFCFConversion = "fcf_conversion = free_cash_flow / net_income"
	FormulaLeverage      = "leverage = net_debt / (operating_income + depreciation_amortization)"
)

// Value is one derived ratio. A nil Value carries a Reason naming the
// missing component or the non-positive denominator.
type Value struct {
	Value          *float64           `json:"value"`
	Formula        string             `json:"formula"`
	Components     map[string]float64 `json:"components,omitempty"`
	Interpretation string             `json:"interpretation,omitempty"`
	Reason         string             `json:"reason,omitempty"`
}

// Inputs are the validated metric values a derivation draws from. Nil means
// the metric was unresolved for the period. MarketCap is supplied by an
// external market-data collaborator, never fetched here.
type Inputs struct {
	OperatingIncome          *float64
	Revenue                  *float64
	NetIncome                *float64
	DepreciationAmortization *float64
	OperatingCashFlow        *float64
	CapitalExpenditure       *float64
	TotalDebt                *float64
	UnrestrictedCash         *float64
	TotalAssets              *float64
	CurrentLiabilities       *float64
	MarketCap                *float64
}

// Bundle holds every derived ratio for one period.
type Bundle struct {
	ROCE            Value `json:"roce"`
	NetDebt         Value `json:"net_debt"`
	EnterpriseValue Value `json:"enterprise_value"`
	EarningsYield   Value `json:"earnings_yield"`
	FreeCashFlow    Value `json:"free_cash_flow"`
	FCFConversion   Value `json:"fcf_conversion"`
	Leverage        Value `json:"leverage"`
}

// Derive computes all ratios from the inputs. Missing components and
// non-positive denominators propagate as null values with reasons; nothing
// here returns an error.
func Derive(in Inputs) Bundle {
	var b Bundle
	b.ROCE = deriveROCE(in)
	b.NetDebt = deriveNetDebt(in)
	b.EnterpriseValue = deriveEnterpriseValue(in, b.NetDebt)
	b.EarningsYield = deriveEarningsYield(in, b.EnterpriseValue)
	b.FreeCashFlow = deriveFreeCashFlow(in)
	b.FCFConversion = deriveFCFConversion(in, b.FreeCashFlow)
	b.Leverage = deriveLeverage(in, b.NetDebt)
	return b
}

func deriveROCE(in Inputs) Value {
	v := Value{Formula: FormulaROCE}
	if reason := missing(map[string]*float64{
		"operating_income":    in.OperatingIncome,
		"total_assets":        in.TotalAssets,
		"current_liabilities": in.CurrentLiabilities,
	}); reason != "" {
		v.Reason = reason
		return v
	}

	capitalEmployed := *in.TotalAssets - *in.CurrentLiabilities
	v.Components = map[string]float64{
		"operating_income":    *in.OperatingIncome,
		"total_assets":        *in.TotalAssets,
		"current_liabilities": *in.CurrentLiabilities,
		"capital_employed":    capitalEmployed,
	}
	if capitalEmployed <= 0 {
		v.Reason = "non-positive capital employed"
		return v
	}

	roce := *in.OperatingIncome / capitalEmployed * 100
	v.Value = &roce
	v.Interpretation = interpretROCE(roce)
	return v
}

func deriveNetDebt(in Inputs) Value {
	v := Value{Formula: FormulaNetDebt}
	if reason := missing(map[string]*float64{
		"total_debt":        in.TotalDebt,
		"unrestricted_cash": in.UnrestrictedCash,
	}); reason != "" {
		v.Reason = reason
		return v
	}

	netDebt := *in.TotalDebt - *in.UnrestrictedCash
	v.Components = map[string]float64{
		"total_debt":        *in.TotalDebt,
		"unrestricted_cash": *in.UnrestrictedCash,
	}
	v.Value = &netDebt
	if netDebt < 0 {
		v.Interpretation = "net-cash position"
	}
	return v
}

func deriveEnterpriseValue(in Inputs, netDebt Value) Value {
	v := Value{Formula: FormulaEV}
	if in.MarketCap == nil {
		v.Reason = "market cap not supplied"
		return v
	}
	if netDebt.Value == nil {
		v.Reason = "net debt unavailable: " + netDebt.Reason
		return v
	}

	ev := *in.MarketCap + *netDebt.Value
	v.Components = map[string]float64{
		"market_cap": *in.MarketCap,
		"net_debt":   *netDebt.Value,
	}
	v.Value = &ev
	return v
}

func deriveEarningsYield(in Inputs, ev Value) Value {
	v := Value{Formula: FormulaEarningsYield}
	if in.OperatingIncome == nil {
		v.Reason = "missing operating_income"
		return v
	}
	if ev.Value == nil {
		v.Reason = "enterprise value unavailable: " + ev.Reason
		return v
	}
	v.Components = map[string]float64{
		"operating_income": *in.OperatingIncome,
		"enterprise_value": *ev.Value,
	}
	if *ev.Value <= 0 {
		v.Reason = "non-positive enterprise value"
		return v
	}

	yield := *in.OperatingIncome / *ev.Value * 100
	v.Value = &yield
	v.Interpretation = interpretEarningsYield(yield)
	return v
}

func deriveFreeCashFlow(in Inputs) Value {
	v := Value{Formula: FormulaFCF}
	if reason := missing(map[string]*float64{
		"operating_cash_flow": in.OperatingCashFlow,
		"capital_expenditure": in.CapitalExpenditure,
	}); reason != "" {
		v.Reason = reason
		return v
	}

	// Capital expenditure is already a positive magnitude.
	fcf := *in.OperatingCashFlow - *in.CapitalExpenditure
	v.Components = map[string]float64{
		"operating_cash_flow": *in.OperatingCashFlow,
		"capital_expenditure": *in.CapitalExpenditure,
	}
	v.Value = &fcf
	return v
}

func deriveFCFConversion(in Inputs, fcf Value) Value {
	v := Value{Formula: FormulaFCFConversion}
	if fcf.Value == nil {
		v.Reason = "free cash flow unavailable: " + fcf.Reason
		return v
	}
	if in.NetIncome == nil {
		v.Reason = "missing net_income"
		return v
	}
	v.Components = map[string]float64{
		"free_cash_flow": *fcf.Value,
		"net_income":     *in.NetIncome,
	}
	if *in.NetIncome == 0 {
		v.Reason = "zero net income"
		return v
	}

	conv := *fcf.Value / *in.NetIncome
	v.Value = &conv
	return v
}

func deriveLeverage(in Inputs, netDebt Value) Value {
	v := Value{Formula: FormulaLeverage}
	if netDebt.Value == nil {
		v.Reason = "net debt unavailable: " + netDebt.Reason
		return v
	}
	if reason := missing(map[string]*float64{
		"operating_income":          in.OperatingIncome,
		"depreciation_amortization": in.DepreciationAmortization,
	}); reason != "" {
		v.Reason = reason
		return v
	}

	ebitda := *in.OperatingIncome + *in.DepreciationAmortization
	v.Components = map[string]float64{
		"net_debt":                  *netDebt.Value,
		"operating_income":          *in.OperatingIncome,
		"depreciation_amortization": *in.DepreciationAmortization,
		"ebitda":                    ebitda,
	}
	if ebitda <= 0 {
		v.Reason = "non-positive EBITDA"
		return v
	}

	lev := *netDebt.Value / ebitda
	v.Value = &lev
	v.Interpretation = interpretLeverage(lev)
	return v
}

func interpretROCE(pct float64) string {
	switch {
	case pct > 25:
		return "excellent"
	case pct > 15:
		return "good"
	case pct > 10:
		return "average"
	default:
		return "below average"
	}
}

func interpretEarningsYield(pct float64) string {
	switch {
	case pct > 10:
		return "very attractive"
	case pct > 8:
		return "attractive"
	case pct > 6:
		return "fair"
	default:
		return "expensive"
	}
}

func interpretLeverage(ratio float64) string {
	switch {
	case ratio < 0:
		return "net cash"
	case ratio < 1:
		return "very low"
	case ratio < 2:
		return "low"
	case ratio < 3:
		return "moderate"
	case ratio < 4:
		return "high"
	default:
		return "very high"
	}
}

// missing returns a stable reason string naming every nil component.
func missing(components map[string]*float64) string {
	var names []string
	for name, v := range components {
		if v == nil {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return fmt.Sprintf("missing %s", strings.Join(names, ", "))
}
