// smartcoins fetches the SmartCoins market snapshot, scores every coin and
// exports the analysis as CSV, SQL, charts, a workbook and a text report.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mwenyemali/smartcoins/internal/api/smartcoins"
	"github.com/mwenyemali/smartcoins/internal/config"
	"github.com/mwenyemali/smartcoins/internal/excel"
	"github.com/mwenyemali/smartcoins/internal/notify"
	"github.com/mwenyemali/smartcoins/internal/pipeline"
	"github.com/mwenyemali/smartcoins/internal/report"
	"github.com/mwenyemali/smartcoins/internal/stats"
	"github.com/mwenyemali/smartcoins/models"
)

var (
	cfgPath string
	cfg     *models.Config
)

var rootCmd = &cobra.Command{
	Use:   "smartcoins",
	Short: "SmartCoins market analyzer",
	Long:  "Fetches the SmartCoins snapshot, derives momentum, risk and investment scores and exports the analysis.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		setupLogger(cfg.LogLevel)
		return nil
	},
	SilenceUsage: true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full analysis and write every configured artifact",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		res, err := p.Run(signalContext())
		if err != nil {
			return err
		}
		log.Info().Int("coins", len(res.Records)).Msg("Analysis complete")
		return nil
	},
}

var excelCmd = &cobra.Command{
	Use:   "excel",
	Short: "Run the analysis and write only the Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		res, err := p.Analyze(signalContext())
		if err != nil {
			return err
		}
		builder := excel.NewBuilder(cfg.ExcelCoinLimit, log.Logger)
		return builder.Write(filepath.Join(cfg.OutputDir, "SmartCoins_Excel_Analysis.xlsx"), res.Records)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the analysis and write only the text report",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		res, err := p.Analyze(signalContext())
		if err != nil {
			return err
		}
		return report.Write(filepath.Join(cfg.OutputDir, "reports", "analysis_report.txt"), report.Data{
			GeneratedAt:  res.GeneratedAt,
			Records:      res.Records,
			Summaries:    res.Summaries,
			Correlations: stats.TopCorrelations(res.Correlations, 10),
			Outliers:     res.Outliers,
			TopN:         cfg.TopN,
		})
	},
}

func newPipeline() (*pipeline.Pipeline, error) {
	notifier, err := notify.New(cfg.TelegramBotToken, cfg.TelegramChatID, log.Logger)
	if err != nil {
		return nil, err
	}
	client := smartcoins.NewClient(cfg)
	return pipeline.New(cfg, client, notifier, log.Logger), nil
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func signalContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return ctx
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config.yaml")
	rootCmd.AddCommand(analyzeCmd, excelCmd, reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
