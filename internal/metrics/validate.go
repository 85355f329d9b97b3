package metrics

import (
	"fmt"
	"math"
)

// Validate applies the ordered cross-checks to one period's bundle and
// returns the bundle with validation statuses attached. Failing checks
// downgrade a result's status and record a reason; they never discard the
// value. Whether a failed result is excluded from aggregation is the
// consumer's call, not this engine's.
func Validate(b Bundle, tolerance float64) Bundle {
	out := make(Bundle, len(b))
	for m, r := range b {
		out[m] = r
	}

	oi := out[OperatingIncome]
	rev := out[Revenue]
	ni := out[NetIncome]

	// Operating income must not exceed revenue.
	if oi.Resolved() && rev.Resolved() && *oi.Value > *rev.Value {
		oi.Status = StatusFail
		oi.Reason = fmt.Sprintf("operating income %.0f exceeds revenue %.0f", *oi.Value, *rev.Value)
		out[OperatingIncome] = oi
	}

	// Net income must not exceed operating income.
	if ni.Resolved() && oi.Resolved() && *ni.Value > *oi.Value {
		ni.Status = StatusFail
		ni.Reason = fmt.Sprintf("net income %.0f exceeds operating income %.0f", *ni.Value, *oi.Value)
		out[NetIncome] = ni
	}

	// Component-built operating income is cross-checked against the
	// independently reported pre-tax figure when one was captured. A
	// disagreement beyond tolerance warns; the lower tier still wins.
	if oi.Resolved() && isComponentBuilt(oi.Strategy) {
		if pretax, ok := oi.Sources["pretax_income"]; ok {
			if relativeDiff(*oi.Value, pretax.Value) > tolerance {
				if oi.Status != StatusFail {
					oi.Status = StatusWarn
				}
				oi.Warnings = append(oi.Warnings, fmt.Sprintf(
					"differs from pre-tax income by %.1f%% (tolerance %.1f%%)",
					relativeDiff(*oi.Value, pretax.Value)*100, tolerance*100))
				out[OperatingIncome] = oi
			}
		}
	}

	// Negative values are valid for net income and cash-flow metrics but
	// unusual for these; flag without failing.
	for _, m := range []Metric{Revenue, TotalAssets, SharesOutstanding, CapitalExpenditure} {
		r := out[m]
		if r.Resolved() && *r.Value < 0 {
			if r.Status != StatusFail {
				r.Status = StatusWarn
			}
			r.Warnings = append(r.Warnings, fmt.Sprintf("unusual negative value %.0f", *r.Value))
			out[m] = r
		}
	}

	return out
}

func isComponentBuilt(strategy string) bool {
	return strategy == StratRevenueMinusCosts || strategy == StratRevenueMinusCogsOpex
}

// relativeDiff returns |a-b| scaled by the larger magnitude. Guards the
// zero denominator so two zeros compare equal.
func relativeDiff(a, b float64) float64 {
	denom := math.Max(math.Abs(a), math.Abs(b))
	if denom == 0 {
		return 0
	}
	return math.Abs(a-b) / denom
}
