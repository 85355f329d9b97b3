package metrics

import (
	"math"

	"github.com/caryschwartzstein/edgar-parser/internal/factstore"
)

// Cash flow statement strategy identifiers.
const (
	StratOCFDirect       = "direct operating cash flow tag"
	StratCapexDirect     = "direct capex tag (sign-normalized)"
	StratDACombined      = "combined D&A tag"
	StratDASumComponents = "Depreciation + Amortization"
)

// CalcOperatingCashFlow resolves net cash provided by operating activities.
func CalcOperatingCashFlow(pf factstore.PeriodFacts) Result {
	if ocf, ok := pf.First(operatingCashFlowTags, factstore.Currency); ok {
		return resolved(OperatingCashFlow, ocf.Value, StratOCFDirect, 1,
			map[string]factstore.Fact{"operating_cash_flow": ocf})
	}
	return unresolved(OperatingCashFlow)
}

// CalcCapitalExpenditure resolves capital expenditure as a positive
// magnitude. Cash-outflow tags are normally reported positive in the
// taxonomy, but the sign convention is normalized either way; the magnitude
// is never reinterpreted.
func CalcCapitalExpenditure(pf factstore.PeriodFacts) Result {
	if capex, ok := pf.First(capexTags, factstore.Currency); ok {
		return resolved(CapitalExpenditure, math.Abs(capex.Value), StratCapexDirect, 1,
			map[string]factstore.Fact{"capital_expenditure": capex})
	}
	return unresolved(CapitalExpenditure)
}

// CalcDepreciationAmortization resolves D&A: a single combined tag wins,
// otherwise the separately reported depreciation and amortization tags are
// summed. Either statement location is acceptable; the first successful
// source is kept with no preference between statements.
func CalcDepreciationAmortization(pf factstore.PeriodFacts) Result {
	if da, ok := pf.First(combinedDATags, factstore.Currency); ok {
		return resolved(DepreciationAmortization, da.Value, StratDACombined, 1,
			map[string]factstore.Fact{"depreciation_amortization": da})
	}

	dep, depOK := pf.First(depreciationTags, factstore.Currency)
	amort, amortOK := pf.First(amortizationTags, factstore.Currency)
	if depOK || amortOK {
		sources := make(map[string]factstore.Fact)
		total := 0.0
		if depOK {
			sources["depreciation"] = dep
			total += dep.Value
		}
		if amortOK {
			sources["amortization"] = amort
			total += amort.Value
		}
		return resolved(DepreciationAmortization, total, StratDASumComponents, 2, sources)
	}

	return unresolved(DepreciationAmortization)
}
