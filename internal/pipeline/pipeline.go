// Package pipeline runs one full analysis: fetch, clean, score, describe
// and export the SmartCoins snapshot.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/mwenyemali/smartcoins/internal/clean"
	"github.com/mwenyemali/smartcoins/internal/database"
	"github.com/mwenyemali/smartcoins/internal/excel"
	"github.com/mwenyemali/smartcoins/internal/export"
	"github.com/mwenyemali/smartcoins/internal/notify"
	"github.com/mwenyemali/smartcoins/internal/rank"
	"github.com/mwenyemali/smartcoins/internal/report"
	"github.com/mwenyemali/smartcoins/internal/scoring"
	"github.com/mwenyemali/smartcoins/internal/stats"
	"github.com/mwenyemali/smartcoins/models"
)

// Fetcher produces the raw flattened snapshot.
type Fetcher interface {
	GetCoins(ctx context.Context) ([]models.CoinRecord, error)
}

// Pipeline wires the analysis stages together.
type Pipeline struct {
	cfg      *models.Config
	fetcher  Fetcher
	notifier *notify.Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

// New creates a pipeline. notifier may be nil.
func New(cfg *models.Config, fetcher Fetcher, notifier *notify.Notifier, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger.With().Str("component", "pipeline").Logger(),
		now:      time.Now,
	}
}

// Result is one analyzed snapshot with its derived statistics.
type Result struct {
	Records      []models.CoinRecord
	Summaries    []stats.Summary
	Correlations *stats.Matrix
	Outliers     []stats.OutlierReport
	GeneratedAt  time.Time
}

// Analyze fetches and scores the snapshot without touching the filesystem.
func (p *Pipeline) Analyze(ctx context.Context) (*Result, error) {
	recs, err := p.fetcher.GetCoins(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching coins: %w", err)
	}
	p.logger.Info().Int("coins", len(recs)).Msg("Snapshot fetched")

	now := p.now()
	recs = clean.Records(recs, now)
	scoring.ScoreAll(recs, scoring.DefaultWeights())

	cols := stats.KeyColumns()
	res := &Result{
		Records:      recs,
		Summaries:    stats.Describe(recs, cols),
		Correlations: stats.CorrelationMatrix(recs, cols),
		Outliers:     p.detectOutliers(recs, cols),
		GeneratedAt:  now,
	}
	p.logger.Info().
		Int("coins", len(recs)).
		Interface("signals", rank.CountBySignal(recs)).
		Msg("Snapshot analyzed")
	return res, nil
}

// outlierColumns are the raw market columns scanned for outliers.
var outlierColumns = map[string]bool{
	"price_usd":      true,
	"market_cap":     true,
	"volume_24h":     true,
	"pct_change_24h": true,
	"pct_change_7d":  true,
}

func (p *Pipeline) detectOutliers(recs []models.CoinRecord, cols []stats.Column) []stats.OutlierReport {
	var reports []stats.OutlierReport
	for _, col := range cols {
		if !outlierColumns[col.Name] {
			continue
		}
		for _, method := range []stats.OutlierMethod{stats.MethodZScore, stats.MethodIQR} {
			r := stats.DetectOutliers(recs, col, method, p.cfg.OutlierZScore)
			if r.Count > 0 {
				reports = append(reports, r)
			}
		}
	}
	return reports
}

// Export writes every configured artifact of an analyzed snapshot.
func (p *Pipeline) Export(ctx context.Context, res *Result) error {
	dataDir := filepath.Join(p.cfg.OutputDir, "data")

	if err := export.WriteDataset(filepath.Join(dataDir, "smartcoins_analyzed.csv"), res.Records); err != nil {
		return err
	}
	top := rank.TopN(res.Records, rank.ByInvestmentScore, rank.Options{N: p.cfg.ExportTopN})
	if err := export.WriteDataset(filepath.Join(dataDir, "top_coins.csv"), top); err != nil {
		return err
	}
	if err := export.WriteSummary(filepath.Join(dataDir, "summary_statistics.csv"), res.Summaries); err != nil {
		return err
	}
	if err := export.WriteCorrelations(filepath.Join(dataDir, "correlation_matrix.csv"), res.Correlations); err != nil {
		return err
	}

	if p.cfg.EnableCharts {
		renderer := export.NewChartRenderer(filepath.Join(p.cfg.OutputDir, "charts"), p.logger)
		if err := renderer.RenderAll(res.Records); err != nil {
			return err
		}
	}

	if p.cfg.EnableDB {
		if err := p.exportDB(ctx, res.Records); err != nil {
			return err
		}
	}

	if p.cfg.EnableExcel {
		builder := excel.NewBuilder(p.cfg.ExcelCoinLimit, p.logger)
		if err := builder.Write(filepath.Join(p.cfg.OutputDir, "SmartCoins_Excel_Analysis.xlsx"), res.Records); err != nil {
			return err
		}
	}

	if err := report.Write(filepath.Join(p.cfg.OutputDir, "reports", "analysis_report.txt"), report.Data{
		GeneratedAt:  res.GeneratedAt,
		Records:      res.Records,
		Summaries:    res.Summaries,
		Correlations: stats.TopCorrelations(res.Correlations, 10),
		Outliers:     res.Outliers,
		TopN:         p.cfg.TopN,
	}); err != nil {
		return err
	}

	if err := p.notifier.SendSummary(res.Records, p.cfg.TopN); err != nil {
		// Notification failure never loses the exported run.
		p.logger.Warn().Err(err).Msg("Telegram notification failed")
	}

	p.logger.Info().Str("output", p.cfg.OutputDir).Msg("Export complete")
	return nil
}

func (p *Pipeline) exportDB(ctx context.Context, recs []models.CoinRecord) error {
	dsn := p.cfg.DBDSN
	if dsn == "" && p.cfg.DBDriver == database.DriverSQLite {
		dsn = filepath.Join(p.cfg.OutputDir, "data", "smartcoins.db")
	}

	db, err := database.New(p.cfg.DBDriver, dsn)
	if err != nil {
		return fmt.Errorf("opening %s database: %w", p.cfg.DBDriver, err)
	}
	defer db.Close()

	if err := db.ReplaceCoins(ctx, recs); err != nil {
		return err
	}
	p.logger.Info().Str("driver", p.cfg.DBDriver).Int("coins", len(recs)).Msg("Snapshot stored")
	return nil
}

// Run analyzes and exports in one call.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res, err := p.Analyze(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.Export(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}
