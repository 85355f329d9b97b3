package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caryschwartzstein/edgar-parser/internal/engine"
	"github.com/caryschwartzstein/edgar-parser/internal/fetcher"
	"github.com/caryschwartzstein/edgar-parser/internal/model"
	"github.com/caryschwartzstein/edgar-parser/internal/store"
	"github.com/caryschwartzstein/edgar-parser/internal/xbrl"
)

var (
	parseTicker     string
	parseCIK        int
	parseFile       string
	parseSave       bool
	parseMarketCap  float64
	parseAnnualOnly bool
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse one company's facts into metrics, deltas and ratios",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if parseTicker == "" && parseCIK == 0 && parseFile == "" {
			return eris.New("one of --ticker, --cik or --file is required")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if parseSave {
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}
		}

		cf, err := loadCompanyFacts(ctx, st)
		if err != nil {
			return err
		}

		opts := engine.Options{AnnualOnly: parseAnnualOnly}
		if parseMarketCap > 0 {
			opts.MarketCap = &parseMarketCap
		}

		started := time.Now().UTC()
		report, err := engine.New(cfg.Engine.VarianceTolerance).ParseCompany(cf, opts)
		if err != nil {
			if parseSave {
				_ = st.LogParse(ctx, model.ParseLog{
					CIK:        cf.CIK,
					EntityName: cf.EntityName,
					Status:     model.ParseStatusFailed,
					Error:      err.Error(),
					StartedAt:  started,
					FinishedAt: time.Now().UTC(),
				})
			}
			return eris.Wrap(err, "parse company")
		}

		if parseSave {
			if err := st.SaveReport(ctx, report); err != nil {
				return eris.Wrap(err, "save report")
			}
			if err := st.LogParse(ctx, model.ParseLog{
				CIK:              report.CIK,
				EntityName:       report.EntityName,
				Status:           model.ParseStatusComplete,
				AnnualPeriods:    len(report.Annual),
				QuarterlyPeriods: len(report.Quarterly),
				StartedAt:        started,
				FinishedAt:       time.Now().UTC(),
			}); err != nil {
				return eris.Wrap(err, "log parse")
			}
			zap.L().Info("report saved",
				zap.Int("cik", report.CIK),
				zap.Int("annual", len(report.Annual)),
				zap.Int("quarterly", len(report.Quarterly)),
			)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

// loadCompanyFacts reads company facts from a local file or downloads them
// by CIK, resolving a ticker through the stored universe first.
func loadCompanyFacts(ctx context.Context, st store.Store) (*xbrl.CompanyFacts, error) {
	if parseFile != "" {
		f, err := os.Open(parseFile)
		if err != nil {
			return nil, eris.Wrapf(err, "open %s", parseFile)
		}
		defer f.Close() //nolint:errcheck
		return xbrl.ParseCompanyFacts(f)
	}

	cik := parseCIK
	if cik == 0 {
		company, err := st.GetCompanyByTicker(ctx, parseTicker)
		if err != nil {
			return nil, eris.Wrapf(err, "resolve ticker %s (run 'universe sync' first)", parseTicker)
		}
		cik = company.CIK
	}

	f, err := initFetcher()
	if err != nil {
		return nil, err
	}

	body, err := f.Download(ctx, fetcher.CompanyFactsURL(cik))
	if err != nil {
		return nil, eris.Wrapf(err, "download company facts for cik %d", cik)
	}
	defer body.Close() //nolint:errcheck

	return xbrl.ParseCompanyFacts(io.LimitReader(body, 1<<30))
}

func init() {
	parseCmd.Flags().StringVar(&parseTicker, "ticker", "", "company ticker symbol")
	parseCmd.Flags().IntVar(&parseCIK, "cik", 0, "SEC CIK number")
	parseCmd.Flags().StringVar(&parseFile, "file", "", "local company facts JSON file")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "persist the report to the store")
	parseCmd.Flags().Float64Var(&parseMarketCap, "market-cap", 0, "market capitalization for enterprise-value ratios")
	parseCmd.Flags().BoolVar(&parseAnnualOnly, "annual-only", false, "skip quarterly periods")
	rootCmd.AddCommand(parseCmd)
}
