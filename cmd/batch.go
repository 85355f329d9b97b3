package main

import (
	"context"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/caryschwartzstein/edgar-parser/internal/engine"
	"github.com/caryschwartzstein/edgar-parser/internal/fetcher"
	"github.com/caryschwartzstein/edgar-parser/internal/model"
	"github.com/caryschwartzstein/edgar-parser/internal/store"
	"github.com/caryschwartzstein/edgar-parser/internal/xbrl"
)

var (
	batchTickers string
	batchLimit   int
	batchAll     bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse many companies concurrently",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if batchTickers == "" && !batchAll {
			return eris.New("either --tickers or --all is required")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		f, err := initFetcher()
		if err != nil {
			return err
		}

		companies, err := batchCompanies(ctx, st)
		if err != nil {
			return err
		}

		return processBatch(ctx, st, f, companies)
	},
}

// batchCompanies resolves the target list from flags.
func batchCompanies(ctx context.Context, st store.Store) ([]model.Company, error) {
	if batchAll {
		companies, err := st.ListCompanies(ctx, store.CompanyFilter{Limit: batchLimit})
		if err != nil {
			return nil, eris.Wrap(err, "list companies")
		}
		return companies, nil
	}

	var companies []model.Company
	for _, t := range strings.Split(batchTickers, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		c, err := st.GetCompanyByTicker(ctx, t)
		if err != nil {
			return nil, eris.Wrapf(err, "resolve ticker %s (run 'universe sync' first)", t)
		}
		companies = append(companies, *c)
	}
	return companies, nil
}

// processBatch parses companies concurrently, one entity per worker. A
// failed company is logged and does not stop the rest.
func processBatch(ctx context.Context, st store.Store, f fetcher.Fetcher, companies []model.Company) error {
	if len(companies) == 0 {
		zap.L().Info("no companies to process")
		return nil
	}

	if batchLimit > 0 && len(companies) > batchLimit {
		companies = companies[:batchLimit]
	}

	concurrency := cfg.Batch.MaxConcurrentCompanies
	zap.L().Info("processing batch",
		zap.Int("companies", len(companies)),
		zap.Int("concurrency", concurrency),
	)

	eng := engine.New(cfg.Engine.VarianceTolerance)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, company := range companies {
		g.Go(func() error {
			log := zap.L().With(
				zap.String("ticker", company.Ticker),
				zap.Int("cik", company.CIK),
			)

			if err := parseOne(gctx, st, f, eng, company); err != nil {
				failed.Add(1)
				log.Error("company parse failed", zap.Error(err))
				return nil // keep the batch going
			}

			succeeded.Add(1)
			log.Info("company parsed")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch wait")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}

// parseOne downloads, parses and persists one company, recording the
// outcome in the parse log either way.
func parseOne(ctx context.Context, st store.Store, f fetcher.Fetcher, eng *engine.Engine, company model.Company) error {
	started := time.Now().UTC()

	body, err := f.Download(ctx, fetcher.CompanyFactsURL(company.CIK))
	if err != nil {
		logFailure(ctx, st, company, started, err)
		return eris.Wrap(err, "download company facts")
	}
	defer body.Close() //nolint:errcheck

	cf, err := xbrl.ParseCompanyFacts(body)
	if err != nil {
		logFailure(ctx, st, company, started, err)
		return err
	}

	report, err := eng.ParseCompany(cf, engine.Options{})
	if err != nil {
		logFailure(ctx, st, company, started, err)
		return err
	}

	if err := st.SaveReport(ctx, report); err != nil {
		logFailure(ctx, st, company, started, err)
		return err
	}

	return st.LogParse(ctx, model.ParseLog{
		CIK:              report.CIK,
		EntityName:       report.EntityName,
		Status:           model.ParseStatusComplete,
		AnnualPeriods:    len(report.Annual),
		QuarterlyPeriods: len(report.Quarterly),
		StartedAt:        started,
		FinishedAt:       time.Now().UTC(),
	})
}

func logFailure(ctx context.Context, st store.Store, company model.Company, started time.Time, cause error) {
	if err := st.LogParse(ctx, model.ParseLog{
		CIK:        company.CIK,
		EntityName: company.Name,
		Status:     model.ParseStatusFailed,
		Error:      cause.Error(),
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
	}); err != nil {
		zap.L().Warn("parse log write failed", zap.Int("cik", company.CIK), zap.Error(err))
	}
}

func init() {
	batchCmd.Flags().StringVar(&batchTickers, "tickers", "", "comma-separated ticker symbols")
	batchCmd.Flags().BoolVar(&batchAll, "all", false, "process every company in the universe")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 100, "max number of companies to process")
	rootCmd.AddCommand(batchCmd)
}
