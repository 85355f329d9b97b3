// Package engine orchestrates a full parse of one entity's company facts:
// period discovery, per-period metric calculation and validation, quarterly
// de-cumulation and ratio derivation.
package engine

import (
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/caryschwartzstein/edgar-parser/internal/factstore"
	"github.com/caryschwartzstein/edgar-parser/internal/metrics"
	"github.com/caryschwartzstein/edgar-parser/internal/quarterly"
	"github.com/caryschwartzstein/edgar-parser/internal/ratios"
	"github.com/caryschwartzstein/edgar-parser/internal/xbrl"
)

// probeTag is used to discover reporting periods. Virtually every filer
// reports total assets each period, so its period end dates enumerate the
// periods worth calculating.
const probeTag = "Assets"

// Forms processed per parse run.
const (
	FormAnnual    = "10-K"
	FormQuarterly = "10-Q"
)

// Options tune one parse run.
type Options struct {
	// MarketCap enables enterprise-value-based ratios when supplied.
	MarketCap *float64
	// AnnualOnly skips quarterly periods and de-cumulation entirely.
	AnnualOnly bool
}

// PeriodReport holds everything derived for one reporting period.
type PeriodReport struct {
	FiscalYear string                             `json:"fiscal_year"`
	PeriodEnd  string                             `json:"period_end"`
	Form       string                             `json:"form"`
	Filed      string                             `json:"filed,omitempty"`
	MostRecent bool                               `json:"most_recent"`
	Metrics    metrics.Bundle                     `json:"metrics"`
	Deltas     map[metrics.Metric]quarterly.Delta `json:"deltas,omitempty"`
	Ratios     ratios.Bundle                      `json:"ratios"`
}

// CompanyReport is the complete output of one parse run.
type CompanyReport struct {
	CIK        int            `json:"cik"`
	EntityName string         `json:"entity_name"`
	Annual     []PeriodReport `json:"annual"`
	Quarterly  []PeriodReport `json:"quarterly,omitempty"`
}

// Engine runs parses. Safe for concurrent use; it holds only configuration.
type Engine struct {
	tolerance float64
	log       *zap.Logger
}

// New builds an Engine. tolerance is the relative disagreement allowed
// between a component-built operating income and the reported pre-tax figure
// before a warning attaches.
func New(tolerance float64) *Engine {
	return &Engine{
		tolerance: tolerance,
		log:       zap.L().With(zap.String("component", "engine")),
	}
}

// ParseCompany resolves metrics, deltas and ratios for every discovered
// period of one entity. Sparse periods produce reports full of null metrics
// rather than errors; only a structurally unusable input errors out.
func (e *Engine) ParseCompany(cf *xbrl.CompanyFacts, opts Options) (*CompanyReport, error) {
	if cf == nil {
		return nil, eris.New("engine: nil company facts")
	}

	store, err := factstore.FromCompanyFacts(cf, xbrl.TargetFacts)
	if err != nil {
		return nil, eris.Wrap(err, "engine: index facts")
	}

	report := &CompanyReport{CIK: cf.CIK, EntityName: cf.EntityName}
	report.Annual = e.buildPeriods(store, FormAnnual, opts)

	if !opts.AnnualOnly {
		report.Quarterly = e.buildPeriods(store, FormQuarterly, opts)
		attachDeltas(report.Quarterly)
	}

	e.log.Info("parsed company",
		zap.Int("cik", cf.CIK),
		zap.String("entity", cf.EntityName),
		zap.Int("annual_periods", len(report.Annual)),
		zap.Int("quarterly_periods", len(report.Quarterly)))

	return report, nil
}

// buildPeriods discovers the periods for one form type and calculates each.
// Output is sorted most recent first with the head flagged.
func (e *Engine) buildPeriods(store *factstore.Store, form string, opts Options) []PeriodReport {
	ends := store.PeriodEnds(probeTag, form)
	if len(ends) == 0 {
		return nil
	}

	reports := make([]PeriodReport, 0, len(ends))
	for _, end := range ends {
		pf := store.Select(end, form)
		bundle := metrics.Validate(metrics.CalculateAll(pf), e.tolerance)

		reports = append(reports, PeriodReport{
			FiscalYear: quarterly.FiscalYearKey(end),
			PeriodEnd:  end,
			Form:       form,
			Filed:      filedDate(pf),
			Metrics:    bundle,
			Ratios:     ratios.Derive(ratioInputs(bundle, opts.MarketCap)),
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].PeriodEnd > reports[j].PeriodEnd
	})
	reports[0].MostRecent = true
	return reports
}

// attachDeltas runs the de-cumulation pass over the quarterly reports and
// folds the per-metric deltas back into each period.
func attachDeltas(reports []PeriodReport) {
	quarters := make([]quarterly.Quarter, 0, len(reports))
	for _, r := range reports {
		cum := make(map[metrics.Metric]*float64)
		for _, m := range metrics.All {
			if m.Cumulative() {
				cum[m] = r.Metrics.Value(m)
			}
		}
		quarters = append(quarters, quarterly.Quarter{PeriodEnd: r.PeriodEnd, Cumulative: cum})
	}

	deltas := quarterly.Normalize(quarters)
	for i := range reports {
		reports[i].Deltas = deltas[reports[i].PeriodEnd]
	}
}

// filedDate reports when the period's primary filing was made, probed off
// the same tag that discovered the period.
func filedDate(pf factstore.PeriodFacts) string {
	if f, ok := pf.Get(probeTag, factstore.Currency); ok {
		return f.Filed
	}
	return ""
}

// ratioInputs maps the validated bundle onto the ratio deriver's inputs.
// Failed metrics still flow through; exclusion policy belongs to consumers.
func ratioInputs(b metrics.Bundle, marketCap *float64) ratios.Inputs {
	return ratios.Inputs{
		OperatingIncome:          b.Value(metrics.OperatingIncome),
		Revenue:                  b.Value(metrics.Revenue),
		NetIncome:                b.Value(metrics.NetIncome),
		DepreciationAmortization: b.Value(metrics.DepreciationAmortization),
		OperatingCashFlow:        b.Value(metrics.OperatingCashFlow),
		CapitalExpenditure:       b.Value(metrics.CapitalExpenditure),
		TotalDebt:                b.Value(metrics.TotalDebt),
		UnrestrictedCash:         b.Value(metrics.UnrestrictedCash),
		TotalAssets:              b.Value(metrics.TotalAssets),
		CurrentLiabilities:       b.Value(metrics.CurrentLiabilities),
		MarketCap:                marketCap,
	}
}
