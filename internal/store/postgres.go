package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/caryschwartzstein/edgar-parser/internal/db"
	"github.com/caryschwartzstein/edgar-parser/internal/engine"
	"github.com/caryschwartzstein/edgar-parser/internal/metrics"
	"github.com/caryschwartzstein/edgar-parser/internal/model"
	"github.com/caryschwartzstein/edgar-parser/internal/quarterly"
	"github.com/caryschwartzstein/edgar-parser/internal/ratios"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Pool returns the underlying database pool for subsystems that need direct
// query access.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS companies (
	cik        BIGINT PRIMARY KEY,
	ticker     TEXT NOT NULL,
	name       TEXT NOT NULL,
	exchange   TEXT,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_companies_ticker ON companies(ticker);

CREATE TABLE IF NOT EXISTS financial_metrics (
	cik                           BIGINT NOT NULL,
	period_end                    TEXT NOT NULL,
	form                          TEXT NOT NULL,
	fiscal_year                   TEXT NOT NULL,
	most_recent                   BOOLEAN NOT NULL DEFAULT false,
	operating_income_ytd          DOUBLE PRECISION,
	operating_income_qtr          DOUBLE PRECISION,
	revenue_ytd                   DOUBLE PRECISION,
	revenue_qtr                   DOUBLE PRECISION,
	net_income_ytd                DOUBLE PRECISION,
	net_income_qtr                DOUBLE PRECISION,
	depreciation_amortization_ytd DOUBLE PRECISION,
	depreciation_amortization_qtr DOUBLE PRECISION,
	operating_cash_flow_ytd       DOUBLE PRECISION,
	operating_cash_flow_qtr       DOUBLE PRECISION,
	capital_expenditure_ytd       DOUBLE PRECISION,
	capital_expenditure_qtr       DOUBLE PRECISION,
	total_debt                    DOUBLE PRECISION,
	unrestricted_cash             DOUBLE PRECISION,
	total_cash                    DOUBLE PRECISION,
	total_assets                  DOUBLE PRECISION,
	current_liabilities           DOUBLE PRECISION,
	shares_outstanding            DOUBLE PRECISION,
	detail                        JSONB NOT NULL,
	PRIMARY KEY (cik, period_end, form)
);

CREATE INDEX IF NOT EXISTS idx_financial_metrics_cik ON financial_metrics(cik);
CREATE INDEX IF NOT EXISTS idx_financial_metrics_most_recent ON financial_metrics(cik, most_recent);

CREATE TABLE IF NOT EXISTS calculated_ratios (
	cik              BIGINT NOT NULL,
	period_end       TEXT NOT NULL,
	form             TEXT NOT NULL,
	roce             DOUBLE PRECISION,
	net_debt         DOUBLE PRECISION,
	enterprise_value DOUBLE PRECISION,
	earnings_yield   DOUBLE PRECISION,
	free_cash_flow   DOUBLE PRECISION,
	fcf_conversion   DOUBLE PRECISION,
	leverage         DOUBLE PRECISION,
	detail           JSONB NOT NULL,
	PRIMARY KEY (cik, period_end, form)
);

CREATE TABLE IF NOT EXISTS parse_log (
	id                TEXT PRIMARY KEY,
	cik               BIGINT NOT NULL,
	entity_name       TEXT,
	status            TEXT NOT NULL,
	error             TEXT,
	annual_periods    INTEGER NOT NULL DEFAULT 0,
	quarterly_periods INTEGER NOT NULL DEFAULT 0,
	started_at        TIMESTAMPTZ NOT NULL,
	finished_at       TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_parse_log_cik ON parse_log(cik);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) UpsertCompanies(ctx context.Context, companies []model.Company) (int64, error) {
	rows := make([][]any, 0, len(companies))
	now := time.Now().UTC()
	for _, c := range companies {
		rows = append(rows, []any{c.CIK, c.Ticker, c.Name, c.Exchange, now})
	}
	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "companies",
		Columns:      []string{"cik", "ticker", "name", "exchange", "updated_at"},
		ConflictKeys: []string{"cik"},
	}, rows)
	return n, eris.Wrap(err, "postgres: upsert companies")
}

func (s *PostgresStore) GetCompanyByTicker(ctx context.Context, ticker string) (*model.Company, error) {
	var c model.Company
	err := s.pool.QueryRow(ctx,
		`SELECT cik, ticker, name, COALESCE(exchange, '') FROM companies WHERE upper(ticker) = upper($1)`,
		ticker,
	).Scan(&c.CIK, &c.Ticker, &c.Name, &c.Exchange)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get company by ticker %s", ticker)
	}
	return &c, nil
}

func (s *PostgresStore) GetCompanyByCIK(ctx context.Context, cik int) (*model.Company, error) {
	var c model.Company
	err := s.pool.QueryRow(ctx,
		`SELECT cik, ticker, name, COALESCE(exchange, '') FROM companies WHERE cik = $1`,
		cik,
	).Scan(&c.CIK, &c.Ticker, &c.Name, &c.Exchange)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get company by cik %d", cik)
	}
	return &c, nil
}

func (s *PostgresStore) ListCompanies(ctx context.Context, filter CompanyFilter) ([]model.Company, error) {
	query := `SELECT cik, ticker, name, COALESCE(exchange, '') FROM companies WHERE true`
	args := []any{}
	argIdx := 1

	if filter.NameContains != "" {
		query += ` AND name ILIKE '%' || $1 || '%'`
		args = append(args, filter.NameContains)
		argIdx++
	}
	query += ` ORDER BY name`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list companies")
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.CIK, &c.Ticker, &c.Name, &c.Exchange); err != nil {
			return nil, eris.Wrap(err, "postgres: scan company")
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "postgres: list companies iterate")
}

func (s *PostgresStore) SaveReport(ctx context.Context, report *engine.CompanyReport) error {
	metricRows, ratioRows, err := reportRows(report)
	if err != nil {
		return err
	}

	if _, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "financial_metrics",
		Columns:      metricColumns,
		ConflictKeys: []string{"cik", "period_end", "form"},
	}, metricRows); err != nil {
		return eris.Wrapf(err, "postgres: save metrics for cik %d", report.CIK)
	}

	if _, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "calculated_ratios",
		Columns:      ratioColumns,
		ConflictKeys: []string{"cik", "period_end", "form"},
	}, ratioRows); err != nil {
		return eris.Wrapf(err, "postgres: save ratios for cik %d", report.CIK)
	}

	return nil
}

func (s *PostgresStore) GetReport(ctx context.Context, cik int) (*engine.CompanyReport, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT m.period_end, m.form, m.fiscal_year, m.most_recent, m.detail, r.detail
		 FROM financial_metrics m
		 LEFT JOIN calculated_ratios r
		   ON r.cik = m.cik AND r.period_end = m.period_end AND r.form = m.form
		 WHERE m.cik = $1
		 ORDER BY m.period_end DESC`,
		cik,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get report for cik %d", cik)
	}
	defer rows.Close()

	report := &engine.CompanyReport{CIK: cik}
	for rows.Next() {
		var p engine.PeriodReport
		var metricDetail, ratioDetail []byte
		if err := rows.Scan(&p.PeriodEnd, &p.Form, &p.FiscalYear, &p.MostRecent, &metricDetail, &ratioDetail); err != nil {
			return nil, eris.Wrap(err, "postgres: scan period")
		}
		if err := unmarshalPeriodDetail(&p, metricDetail, ratioDetail); err != nil {
			return nil, err
		}
		switch p.Form {
		case engine.FormAnnual:
			report.Annual = append(report.Annual, p)
		default:
			report.Quarterly = append(report.Quarterly, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: get report iterate")
	}
	if len(report.Annual) == 0 && len(report.Quarterly) == 0 {
		return nil, eris.Errorf("no stored report for cik %d", cik)
	}
	return report, nil
}

func (s *PostgresStore) LogParse(ctx context.Context, entry model.ParseLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO parse_log (id, cik, entity_name, status, error, annual_periods, quarterly_periods, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.CIK, entry.EntityName, string(entry.Status), entry.Error,
		entry.AnnualPeriods, entry.QuarterlyPeriods, entry.StartedAt, entry.FinishedAt,
	)
	return eris.Wrapf(err, "postgres: log parse for cik %d", entry.CIK)
}

// unmarshalPeriodDetail rebuilds a period report from the stored detail
// documents.
func unmarshalPeriodDetail(p *engine.PeriodReport, metricDetail, ratioDetail []byte) error {
	var detail struct {
		Metrics metrics.Bundle                     `json:"metrics"`
		Deltas  map[metrics.Metric]quarterly.Delta `json:"deltas"`
	}
	if err := json.Unmarshal(metricDetail, &detail); err != nil {
		return eris.Wrapf(err, "store: unmarshal metric detail for %s", p.PeriodEnd)
	}
	p.Metrics = detail.Metrics
	p.Deltas = detail.Deltas

	if len(ratioDetail) > 0 {
		var rb ratios.Bundle
		if err := json.Unmarshal(ratioDetail, &rb); err != nil {
			return eris.Wrapf(err, "store: unmarshal ratio detail for %s", p.PeriodEnd)
		}
		p.Ratios = rb
	}
	return nil
}
