// Package database persists analyzed snapshots into the coins table, on
// either an embedded sqlite file or an external PostgreSQL instance.
package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/mwenyemali/smartcoins/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// New opens the database and ensures the coins table exists. For sqlite the
// DSN is the database file path; for postgres a lib/pq connection string.
func New(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS coins (
			symbol TEXT PRIMARY KEY,
			coin_name TEXT NOT NULL,
			price_usd DOUBLE PRECISION,
			market_cap DOUBLE PRECISION,
			volume_24h DOUBLE PRECISION,
			pct_change_24h DOUBLE PRECISION,
			pct_change_7d DOUBLE PRECISION,
			coin_type TEXT,
			platform TEXT,
			category TEXT,
			overall_score DOUBLE PRECISION,
			momentum_score DOUBLE PRECISION NOT NULL,
			risk_score DOUBLE PRECISION NOT NULL,
			investment_score DOUBLE PRECISION NOT NULL,
			predicted_signal TEXT NOT NULL,
			potential_return DOUBLE PRECISION NOT NULL,
			price_tier TEXT,
			momentum_category TEXT,
			risk_level TEXT,
			days_since_added INTEGER
		)
	`)

	return err
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// ReplaceCoins rewrites the coins table with a fresh snapshot. The old rows
// are dropped in the same transaction, so readers never see a partial table.
func (db *DB) ReplaceCoins(ctx context.Context, recs []models.CoinRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning coins transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM coins`); err != nil {
		return fmt.Errorf("clearing coins table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO coins (
			symbol, coin_name, price_usd, market_cap, volume_24h,
			pct_change_24h, pct_change_7d, coin_type, platform, category,
			overall_score, momentum_score, risk_score, investment_score,
			predicted_signal, potential_return, price_tier, momentum_category,
			risk_level, days_since_added
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`)
	if err != nil {
		return fmt.Errorf("preparing coins insert: %w", err)
	}
	defer stmt.Close()

	for i := range recs {
		rec := &recs[i]
		_, err := stmt.ExecContext(ctx,
			rec.Symbol, rec.CoinName,
			nullFloat(rec.PriceUSD), nullFloat(rec.MarketCap), nullFloat(rec.Volume24h),
			nullFloat(rec.PctChange24h), nullFloat(rec.PctChange7d),
			rec.CoinType, rec.Platform, rec.Category,
			nullFloat(rec.OverallScore),
			rec.MomentumScore, rec.RiskScore, rec.InvestmentScore,
			rec.PredictedSignal, rec.PotentialReturn,
			rec.PriceTier, rec.MomentumCategory, rec.RiskLevel,
			nullInt(rec.DaysSinceAdded),
		)
		if err != nil {
			return fmt.Errorf("inserting %s: %w", rec.Symbol, err)
		}
	}

	return tx.Commit()
}

// CountCoins returns the stored row count.
func (db *DB) CountCoins(ctx context.Context) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM coins`).Scan(&n)
	return n, err
}

// CoinsBySignal returns the stored symbols carrying the given signal, best
// investment score first.
func (db *DB) CoinsBySignal(ctx context.Context, signal string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT symbol
		FROM coins
		WHERE predicted_signal = $1
		ORDER BY investment_score DESC, symbol
	`, signal)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}
