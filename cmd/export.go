package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/caryschwartzstein/edgar-parser/internal/engine"
	"github.com/caryschwartzstein/edgar-parser/internal/metrics"
)

var (
	exportCIK int
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a stored report to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		report, err := st.GetReport(ctx, exportCIK)
		if err != nil {
			return eris.Wrapf(err, "load report for cik %d", exportCIK)
		}

		file := xlsx.NewFile()
		if err := addMetricsSheet(file, report); err != nil {
			return err
		}
		if err := addRatiosSheet(file, report); err != nil {
			return err
		}

		if err := file.Save(exportOut); err != nil {
			return eris.Wrapf(err, "write %s", exportOut)
		}

		zap.L().Info("report exported",
			zap.Int("cik", exportCIK),
			zap.String("path", exportOut),
		)
		return nil
	},
}

// exportMetrics is the column order of the Metrics sheet.
var exportMetrics = []metrics.Metric{
	metrics.Revenue,
	metrics.OperatingIncome,
	metrics.NetIncome,
	metrics.DepreciationAmortization,
	metrics.OperatingCashFlow,
	metrics.CapitalExpenditure,
	metrics.TotalDebt,
	metrics.UnrestrictedCash,
	metrics.TotalCash,
	metrics.TotalAssets,
	metrics.CurrentLiabilities,
	metrics.SharesOutstanding,
}

func addMetricsSheet(file *xlsx.File, report *engine.CompanyReport) error {
	sheet, err := file.AddSheet("Metrics")
	if err != nil {
		return eris.Wrap(err, "add metrics sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"period_end", "form", "fiscal_year", "most_recent"} {
		header.AddCell().Value = h
	}
	for _, m := range exportMetrics {
		header.AddCell().Value = string(m)
	}

	for _, p := range append(append([]engine.PeriodReport{}, report.Annual...), report.Quarterly...) {
		row := sheet.AddRow()
		row.AddCell().Value = p.PeriodEnd
		row.AddCell().Value = p.Form
		row.AddCell().Value = p.FiscalYear
		row.AddCell().SetBool(p.MostRecent)
		for _, m := range exportMetrics {
			addFloatCell(row, p.Metrics.Value(m))
		}
	}
	return nil
}

func addRatiosSheet(file *xlsx.File, report *engine.CompanyReport) error {
	sheet, err := file.AddSheet("Ratios")
	if err != nil {
		return eris.Wrap(err, "add ratios sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{
		"period_end", "form", "roce", "net_debt", "enterprise_value",
		"earnings_yield", "free_cash_flow", "fcf_conversion", "leverage",
	} {
		header.AddCell().Value = h
	}

	for _, p := range append(append([]engine.PeriodReport{}, report.Annual...), report.Quarterly...) {
		row := sheet.AddRow()
		row.AddCell().Value = p.PeriodEnd
		row.AddCell().Value = p.Form
		addFloatCell(row, p.Ratios.ROCE.Value)
		addFloatCell(row, p.Ratios.NetDebt.Value)
		addFloatCell(row, p.Ratios.EnterpriseValue.Value)
		addFloatCell(row, p.Ratios.EarningsYield.Value)
		addFloatCell(row, p.Ratios.FreeCashFlow.Value)
		addFloatCell(row, p.Ratios.FCFConversion.Value)
		addFloatCell(row, p.Ratios.Leverage.Value)
	}
	return nil
}

// addFloatCell leaves the cell blank for null values so spreadsheet
// formulas skip them instead of treating them as zero.
func addFloatCell(row *xlsx.Row, v *float64) {
	cell := row.AddCell()
	if v != nil {
		cell.SetFloat(*v)
	}
}

func init() {
	exportCmd.Flags().IntVar(&exportCIK, "cik", 0, "SEC CIK number (required)")
	exportCmd.Flags().StringVar(&exportOut, "out", "report.xlsx", "output file path")
	_ = exportCmd.MarkFlagRequired("cik")
	rootCmd.AddCommand(exportCmd)
}
