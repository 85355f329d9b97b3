// Package store persists parsed metrics, ratios and the company universe.
// Two backends exist: Postgres for shared deployments and SQLite for
// single-user local work.
package store

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/caryschwartzstein/edgar-parser/internal/engine"
	"github.com/caryschwartzstein/edgar-parser/internal/metrics"
	"github.com/caryschwartzstein/edgar-parser/internal/model"
)

// CompanyFilter specifies criteria for listing universe entries.
type CompanyFilter struct {
	NameContains string `json:"name_contains,omitempty"`
	Limit        int    `json:"limit,omitempty"`
	Offset       int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for parse output.
type Store interface {
	// Universe
	UpsertCompanies(ctx context.Context, companies []model.Company) (int64, error)
	GetCompanyByTicker(ctx context.Context, ticker string) (*model.Company, error)
	GetCompanyByCIK(ctx context.Context, cik int) (*model.Company, error)
	ListCompanies(ctx context.Context, filter CompanyFilter) ([]model.Company, error)

	// Parse output
	SaveReport(ctx context.Context, report *engine.CompanyReport) error
	GetReport(ctx context.Context, cik int) (*engine.CompanyReport, error)

	// Run log
	LogParse(ctx context.Context, entry model.ParseLog) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// metricColumns is the flattened column list of financial_metrics, in the
// order the row builders emit values. Cumulative metrics carry both the
// as-reported YTD figure and the de-cumulated quarterly figure; the latter
// is null for annual rows and for quarters whose predecessor was missing.
var metricColumns = []string{
	"cik", "period_end", "form", "fiscal_year", "most_recent",
	"operating_income_ytd", "operating_income_qtr",
	"revenue_ytd", "revenue_qtr",
	"net_income_ytd", "net_income_qtr",
	"depreciation_amortization_ytd", "depreciation_amortization_qtr",
	"operating_cash_flow_ytd", "operating_cash_flow_qtr",
	"capital_expenditure_ytd", "capital_expenditure_qtr",
	"total_debt", "unrestricted_cash", "total_cash",
	"total_assets", "current_liabilities", "shares_outstanding",
	"detail",
}

// ratioColumns is the flattened column list of calculated_ratios.
var ratioColumns = []string{
	"cik", "period_end", "form",
	"roce", "net_debt", "enterprise_value", "earnings_yield",
	"free_cash_flow", "fcf_conversion", "leverage",
	"detail",
}

// metricRow flattens one period report into a financial_metrics row. The
// detail column keeps the full bundle with strategies, sources, statuses
// and deltas so nothing is lost to the flattening.
func metricRow(cik int, r engine.PeriodReport) ([]any, error) {
	detail, err := json.Marshal(struct {
		Metrics metrics.Bundle `json:"metrics"`
		Deltas  any            `json:"deltas,omitempty"`
	}{Metrics: r.Metrics, Deltas: r.Deltas})
	if err != nil {
		return nil, eris.Wrapf(err, "store: marshal metric detail for %s", r.PeriodEnd)
	}

	qtr := func(m metrics.Metric) *float64 {
		if d, ok := r.Deltas[m]; ok {
			return d.Quarterly
		}
		return nil
	}

	return []any{
		cik, r.PeriodEnd, r.Form, r.FiscalYear, r.MostRecent,
		r.Metrics.Value(metrics.OperatingIncome), qtr(metrics.OperatingIncome),
		r.Metrics.Value(metrics.Revenue), qtr(metrics.Revenue),
		r.Metrics.Value(metrics.NetIncome), qtr(metrics.NetIncome),
		r.Metrics.Value(metrics.DepreciationAmortization), qtr(metrics.DepreciationAmortization),
		r.Metrics.Value(metrics.OperatingCashFlow), qtr(metrics.OperatingCashFlow),
		r.Metrics.Value(metrics.CapitalExpenditure), qtr(metrics.CapitalExpenditure),
		r.Metrics.Value(metrics.TotalDebt),
		r.Metrics.Value(metrics.UnrestrictedCash),
		r.Metrics.Value(metrics.TotalCash),
		r.Metrics.Value(metrics.TotalAssets),
		r.Metrics.Value(metrics.CurrentLiabilities),
		r.Metrics.Value(metrics.SharesOutstanding),
		detail,
	}, nil
}

// ratioRow flattens one period's ratios into a calculated_ratios row.
func ratioRow(cik int, r engine.PeriodReport) ([]any, error) {
	detail, err := json.Marshal(r.Ratios)
	if err != nil {
		return nil, eris.Wrapf(err, "store: marshal ratio detail for %s", r.PeriodEnd)
	}

	return []any{
		cik, r.PeriodEnd, r.Form,
		r.Ratios.ROCE.Value,
		r.Ratios.NetDebt.Value,
		r.Ratios.EnterpriseValue.Value,
		r.Ratios.EarningsYield.Value,
		r.Ratios.FreeCashFlow.Value,
		r.Ratios.FCFConversion.Value,
		r.Ratios.Leverage.Value,
		detail,
	}, nil
}

// reportRows flattens a whole company report into metric and ratio rows.
func reportRows(report *engine.CompanyReport) (metricRows, ratioRows [][]any, err error) {
	periods := make([]engine.PeriodReport, 0, len(report.Annual)+len(report.Quarterly))
	periods = append(periods, report.Annual...)
	periods = append(periods, report.Quarterly...)

	for _, p := range periods {
		mr, err := metricRow(report.CIK, p)
		if err != nil {
			return nil, nil, err
		}
		rr, err := ratioRow(report.CIK, p)
		if err != nil {
			return nil, nil, err
		}
		metricRows = append(metricRows, mr)
		ratioRows = append(ratioRows, rr)
	}
	return metricRows, ratioRows, nil
}
