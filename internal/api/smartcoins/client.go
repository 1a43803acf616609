// Package smartcoins is the client for the SmartCoins snapshot API.
package smartcoins

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/mwenyemali/smartcoins/models"
)

// Client fetches the coin snapshot with rate limiting and retries.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	config     *models.Config
	logger     zerolog.Logger
}

// NewClient creates a new API client with rate limiting
func NewClient(config *models.Config) *Client {
	perSec := config.RequestsPerSec
	if perSec <= 0 {
		perSec = 5
	}
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = 30
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), perSec),
		config:  config,
		logger:  log.With().Str("component", "api_client").Logger(),
	}
}

// GetCoins fetches the full coin snapshot and flattens each entry into a
// CoinRecord. The nested investmentScores object becomes the inv_*_score
// fields; null or omitted numerics stay nil on the record.
func (c *Client) GetCoins(ctx context.Context) ([]models.CoinRecord, error) {
	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	c.logger.Debug().Str("url", c.config.APIURL).Msg("Fetching coins")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.APIURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Use exponential backoff for retries
	var resp *http.Response
	operation := func() error {
		var err error
		resp, err = c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("non-200 status code: %d", resp.StatusCode)
		}
		return nil
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoffStrategy); err != nil {
		return nil, fmt.Errorf("after retries: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var data models.APIResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if len(data.Data) == 0 {
		c.logger.Warn().Msg("No coins in response")
		return nil, fmt.Errorf("empty data returned")
	}

	records := make([]models.CoinRecord, 0, len(data.Data))
	for _, coin := range data.Data {
		records = append(records, Flatten(coin))
	}

	c.logger.Debug().Int("count", len(records)).Msg("Fetched coins")
	return records, nil
}

// Flatten maps one raw API coin onto the tabular record form.
func Flatten(coin models.APICoin) models.CoinRecord {
	rec := models.CoinRecord{
		CoinName:             coin.Name,
		Symbol:               coin.Symbol,
		PriceUSD:             coin.Price,
		MarketCap:            coin.MarketCap,
		Volume24h:            coin.Volume24h,
		VolumeChange24h:      coin.VolumeChange24h,
		PctChange1h:          coin.PercentChange1h,
		PctChange24h:         coin.PercentChange24h,
		PctChange7d:          coin.PercentChange7d,
		PctChange30d:         coin.PercentChange30d,
		PctChange60d:         coin.PercentChange60d,
		PctChange90d:         coin.PercentChange90d,
		CoinType:             coin.CoinType,
		Platform:             coin.Platform,
		Category:             coin.Category,
		PrimarySignal:        coin.PrimarySignal,
		SignalStrength:       coin.SignalStrength,
		OverallScore:         coin.OverallScore,
		CompositeScore:       coin.CompositeScore,
		ChangeMomentum:       coin.ChangeMomentum,
		MomentumAcceleration: coin.MomentumAcceleration,
		MomentumConsistency:  coin.MomentumConsistency,
		RiskAdjustedMomentum: coin.RiskAdjustedMomentum,
		PriceVolatility:      coin.PriceVolatility,
		VolatilityRisk:       coin.VolatilityRisk,
		LiquidityRisk:        coin.LiquidityRisk,
		ConcentrationRisk:    coin.ConcentrationRisk,
		NVTScore:             coin.NVTScore,
		MVRVScore:            coin.MVRVScore,
		ScarcityScore:        coin.ScarcityScore,
		EfficiencyScore:      coin.EfficiencyScore,
		MaxSupply:            coin.MaxSupply,
		CirculatingSupply:    coin.CirculatingSupply,
		TotalSupply:          coin.TotalSupply,
		AnnualInflation:      coin.AnnualInflation,
		StockToFlow:          coin.StockToFlow,
		DateAdded:            parseTime(coin.DateAdded),
		LastUpdated:          parseTime(coin.LastUpdated),
	}

	if coin.InvestmentScores != nil {
		rec.InvMomentumScore = coin.InvestmentScores["momentum"]
		rec.InvValueScore = coin.InvestmentScores["value"]
		rec.InvRiskScore = coin.InvestmentScores["risk"]
		rec.InvActivityScore = coin.InvestmentScores["activity"]
		rec.InvNetworkScore = coin.InvestmentScores["network"]
	}

	return rec
}

// parseTime coerces the API timestamp formats, nil on failure.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
