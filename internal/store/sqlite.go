package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/caryschwartzstein/edgar-parser/internal/engine"
	"github.com/caryschwartzstein/edgar-parser/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS companies (
	cik        INTEGER PRIMARY KEY,
	ticker     TEXT NOT NULL,
	name       TEXT NOT NULL,
	exchange   TEXT,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_companies_ticker ON companies(ticker);

CREATE TABLE IF NOT EXISTS financial_metrics (
	cik                           INTEGER NOT NULL,
	period_end                    TEXT NOT NULL,
	form                          TEXT NOT NULL,
	fiscal_year                   TEXT NOT NULL,
	most_recent                   INTEGER NOT NULL DEFAULT 0,
	operating_income_ytd          REAL,
	operating_income_qtr          REAL,
	revenue_ytd                   REAL,
	revenue_qtr                   REAL,
	net_income_ytd                REAL,
	net_income_qtr                REAL,
	depreciation_amortization_ytd REAL,
	depreciation_amortization_qtr REAL,
	operating_cash_flow_ytd       REAL,
	operating_cash_flow_qtr       REAL,
	capital_expenditure_ytd       REAL,
	capital_expenditure_qtr       REAL,
	total_debt                    REAL,
	unrestricted_cash             REAL,
	total_cash                    REAL,
	total_assets                  REAL,
	current_liabilities           REAL,
	shares_outstanding            REAL,
	detail                        TEXT NOT NULL,
	PRIMARY KEY (cik, period_end, form)
);

CREATE TABLE IF NOT EXISTS calculated_ratios (
	cik              INTEGER NOT NULL,
	period_end       TEXT NOT NULL,
	form             TEXT NOT NULL,
	roce             REAL,
	net_debt         REAL,
	enterprise_value REAL,
	earnings_yield   REAL,
	free_cash_flow   REAL,
	fcf_conversion   REAL,
	leverage         REAL,
	detail           TEXT NOT NULL,
	PRIMARY KEY (cik, period_end, form)
);

CREATE TABLE IF NOT EXISTS parse_log (
	id                TEXT PRIMARY KEY,
	cik               INTEGER NOT NULL,
	entity_name       TEXT,
	status            TEXT NOT NULL,
	error             TEXT,
	annual_periods    INTEGER NOT NULL DEFAULT 0,
	quarterly_periods INTEGER NOT NULL DEFAULT 0,
	started_at        DATETIME NOT NULL,
	finished_at       DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_parse_log_cik ON parse_log(cik);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertCompanies(ctx context.Context, companies []model.Company) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO companies (cik, ticker, name, exchange, updated_at)
		 VALUES (?, ?, ?, ?, datetime('now'))
		 ON CONFLICT (cik) DO UPDATE SET
		   ticker = excluded.ticker, name = excluded.name,
		   exchange = excluded.exchange, updated_at = excluded.updated_at`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare upsert companies")
	}
	defer stmt.Close() //nolint:errcheck

	var n int64
	for _, c := range companies {
		if _, err := stmt.ExecContext(ctx, c.CIK, c.Ticker, c.Name, c.Exchange); err != nil {
			return n, eris.Wrapf(err, "sqlite: upsert company %d", c.CIK)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return n, eris.Wrap(err, "sqlite: commit upsert companies")
	}
	return n, nil
}

func (s *SQLiteStore) GetCompanyByTicker(ctx context.Context, ticker string) (*model.Company, error) {
	var c model.Company
	var exchange sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT cik, ticker, name, exchange FROM companies WHERE upper(ticker) = upper(?)`,
		ticker,
	).Scan(&c.CIK, &c.Ticker, &c.Name, &exchange)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get company by ticker %s", ticker)
	}
	c.Exchange = exchange.String
	return &c, nil
}

func (s *SQLiteStore) GetCompanyByCIK(ctx context.Context, cik int) (*model.Company, error) {
	var c model.Company
	var exchange sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT cik, ticker, name, exchange FROM companies WHERE cik = ?`,
		cik,
	).Scan(&c.CIK, &c.Ticker, &c.Name, &exchange)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get company by cik %d", cik)
	}
	c.Exchange = exchange.String
	return &c, nil
}

func (s *SQLiteStore) ListCompanies(ctx context.Context, filter CompanyFilter) ([]model.Company, error) {
	query := `SELECT cik, ticker, name, exchange FROM companies WHERE 1=1`
	var args []any

	if filter.NameContains != "" {
		query += ` AND lower(name) LIKE '%' || lower(?) || '%'`
		args = append(args, filter.NameContains)
	}
	query += ` ORDER BY name`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list companies")
	}
	defer rows.Close() //nolint:errcheck

	var companies []model.Company
	for rows.Next() {
		var c model.Company
		var exchange sql.NullString
		if err := rows.Scan(&c.CIK, &c.Ticker, &c.Name, &exchange); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan company")
		}
		c.Exchange = exchange.String
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "sqlite: list companies iterate")
}

func (s *SQLiteStore) SaveReport(ctx context.Context, report *engine.CompanyReport) error {
	metricRows, ratioRows, err := reportRows(report)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	if err := sqliteUpsert(ctx, tx, "financial_metrics", metricColumns,
		[]string{"cik", "period_end", "form"}, metricRows); err != nil {
		return eris.Wrapf(err, "sqlite: save metrics for cik %d", report.CIK)
	}
	if err := sqliteUpsert(ctx, tx, "calculated_ratios", ratioColumns,
		[]string{"cik", "period_end", "form"}, ratioRows); err != nil {
		return eris.Wrapf(err, "sqlite: save ratios for cik %d", report.CIK)
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit save report")
}

// sqliteUpsert is the row-at-a-time counterpart of the Postgres COPY-based
// bulk upsert. SQLite has no COPY protocol; a prepared statement inside one
// transaction is the fast path here.
func sqliteUpsert(ctx context.Context, tx *sql.Tx, table string, columns, conflictKeys []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	conflictSet := make(map[string]bool, len(conflictKeys))
	for _, k := range conflictKeys {
		conflictSet[k] = true
	}
	var setClauses []string
	for _, c := range columns {
		if !conflictSet[c] {
			setClauses = append(setClauses, c+" = excluded."+c)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES (" + placeholders + ")" +
		" ON CONFLICT (" + strings.Join(conflictKeys, ", ") + ") DO UPDATE SET " + strings.Join(setClauses, ", ")

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return eris.Wrapf(err, "sqlite: prepare upsert %s", table)
	}
	defer stmt.Close() //nolint:errcheck

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return eris.Wrapf(err, "sqlite: upsert row into %s", table)
		}
	}
	return nil
}

func (s *SQLiteStore) GetReport(ctx context.Context, cik int) (*engine.CompanyReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.period_end, m.form, m.fiscal_year, m.most_recent, m.detail, r.detail
		 FROM financial_metrics m
		 LEFT JOIN calculated_ratios r
		   ON r.cik = m.cik AND r.period_end = m.period_end AND r.form = m.form
		 WHERE m.cik = ?
		 ORDER BY m.period_end DESC`,
		cik,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get report for cik %d", cik)
	}
	defer rows.Close() //nolint:errcheck

	report := &engine.CompanyReport{CIK: cik}
	for rows.Next() {
		var p engine.PeriodReport
		var metricDetail string
		var ratioDetail sql.NullString
		if err := rows.Scan(&p.PeriodEnd, &p.Form, &p.FiscalYear, &p.MostRecent, &metricDetail, &ratioDetail); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan period")
		}
		if err := unmarshalPeriodDetail(&p, []byte(metricDetail), []byte(ratioDetail.String)); err != nil {
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
		return nil, eris.Wrap(err, "sqlite: get report iterate")
	}
	if len(report.Annual) == 0 && len(report.Quarterly) == 0 {
		return nil, eris.Errorf("no stored report for cik %d", cik)
	}
	return report, nil
}

func (s *SQLiteStore) LogParse(ctx context.Context, entry model.ParseLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO parse_log (id, cik, entity_name, status, error, annual_periods, quarterly_periods, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.CIK, entry.EntityName, string(entry.Status), entry.Error,
		entry.AnnualPeriods, entry.QuarterlyPeriods, entry.StartedAt, entry.FinishedAt,
	)
	return eris.Wrapf(err, "sqlite: log parse for cik %d", entry.CIK)
}
