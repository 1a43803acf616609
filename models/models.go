package models

import (
	"time"
)

type Config struct {
	APIURL         string  `yaml:"api_url" env:"API_URL" envDefault:"https://smartcoinsapp.com/api/coins"`
	RequestTimeout int     `yaml:"request_timeout" env:"REQUEST_TIMEOUT" envDefault:"30"` // seconds
	RequestsPerSec int     `yaml:"requests_per_sec" env:"REQUESTS_PER_SEC" envDefault:"5"`
	OutputDir      string  `yaml:"output_dir" env:"OUTPUT_DIR" envDefault:"output"`
	TopN           int     `yaml:"top_n" env:"TOP_N" envDefault:"10"`
	ExportTopN     int     `yaml:"export_top_n" env:"EXPORT_TOP_N" envDefault:"50"`
	ExcelCoinLimit int     `yaml:"excel_coin_limit" env:"EXCEL_COIN_LIMIT" envDefault:"30"`
	DBDriver       string  `yaml:"db_driver" env:"DB_DRIVER" envDefault:"sqlite"` // sqlite or postgres
	DBDSN          string  `yaml:"db_dsn" env:"DB_DSN" envDefault:""`             // empty = <output>/data/smartcoins.db for sqlite
	OutlierZScore  float64 `yaml:"outlier_zscore" env:"OUTLIER_ZSCORE" envDefault:"3"`
	EnableCharts   bool    `yaml:"enable_charts" env:"ENABLE_CHARTS" envDefault:"true"`
	EnableExcel    bool    `yaml:"enable_excel" env:"ENABLE_EXCEL" envDefault:"true"`
	EnableDB       bool    `yaml:"enable_db" env:"ENABLE_DB" envDefault:"true"`
	LogLevel       string  `yaml:"log_level" env:"LOG_LEVEL" envDefault:"info"`

	TelegramBotToken string `yaml:"telegram_bot_token" env:"TELEGRAM_BOT_TOKEN" envDefault:""`
	TelegramChatID   int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID" envDefault:"0"`
}

// CoinRecord is one flattened row of the SmartCoins snapshot. Raw numeric
// fields are pointers: nil means the API returned null or omitted the field,
// which is a valid state the scoring pipeline degrades over, never an error.
type CoinRecord struct {
	CoinName string `json:"coin_name"`
	Symbol   string `json:"symbol"`

	PriceUSD        *float64 `json:"price_usd"`
	MarketCap       *float64 `json:"market_cap"`
	Volume24h       *float64 `json:"volume_24h"`
	VolumeChange24h *float64 `json:"volume_change_24h"`
	PctChange1h     *float64 `json:"pct_change_1h"`
	PctChange24h    *float64 `json:"pct_change_24h"`
	PctChange7d     *float64 `json:"pct_change_7d"`
	PctChange30d    *float64 `json:"pct_change_30d"`
	PctChange60d    *float64 `json:"pct_change_60d"`
	PctChange90d    *float64 `json:"pct_change_90d"`

	CoinType       string   `json:"coin_type"`
	Platform       string   `json:"platform"`
	Category       string   `json:"category"`
	PrimarySignal  string   `json:"primary_signal"`
	SignalStrength *float64 `json:"signal_strength"`

	OverallScore   *float64 `json:"overall_score"`
	CompositeScore *float64 `json:"composite_score"`

	ChangeMomentum       *float64 `json:"change_momentum"`
	MomentumAcceleration *float64 `json:"momentum_acceleration"`
	MomentumConsistency  *float64 `json:"momentum_consistency"`
	RiskAdjustedMomentum *float64 `json:"risk_adjusted_momentum"`

	PriceVolatility   *float64 `json:"price_volatility"`
	VolatilityRisk    *float64 `json:"volatility_risk"`
	LiquidityRisk     *float64 `json:"liquidity_risk"`
	ConcentrationRisk *float64 `json:"concentration_risk"`

	NVTScore        *float64 `json:"nvt_score"`
	MVRVScore       *float64 `json:"mvrv_score"`
	ScarcityScore   *float64 `json:"scarcity_score"`
	EfficiencyScore *float64 `json:"efficiency_score"`

	// Flattened from the nested investmentScores object.
	InvMomentumScore *float64 `json:"inv_momentum_score"`
	InvValueScore    *float64 `json:"inv_value_score"`
	InvRiskScore     *float64 `json:"inv_risk_score"`
	InvActivityScore *float64 `json:"inv_activity_score"`
	InvNetworkScore  *float64 `json:"inv_network_score"`

	MaxSupply         *float64 `json:"max_supply"`
	CirculatingSupply *float64 `json:"circulating_supply"`
	TotalSupply       *float64 `json:"total_supply"`
	AnnualInflation   *float64 `json:"annual_inflation"`
	StockToFlow       *float64 `json:"stock_to_flow"`

	DateAdded   *time.Time `json:"date_added"`
	LastUpdated *time.Time `json:"last_updated"`

	// Derived fields. Populated by the scoring pipeline, always present
	// afterwards and never mutated again.
	MomentumScore    float64 `json:"momentum_score"`
	RiskScore        float64 `json:"risk_score"`
	InvestmentScore  float64 `json:"investment_score"`
	PredictedSignal  string  `json:"predicted_signal"`
	PotentialReturn  float64 `json:"potential_return"`
	PriceTier        string  `json:"price_tier"`
	MomentumCategory string  `json:"momentum_category"`
	RiskLevel        string  `json:"risk_level"`
	DaysSinceAdded   *int    `json:"days_since_added"`
}

// APIResponse is the raw SmartCoins API payload: {"data":[{...}]}.
type APIResponse struct {
	Data []APICoin `json:"data"`
}

// APICoin mirrors one coin object as returned by the API. The nested
// investmentScores object is flattened into the CoinRecord by the client.
type APICoin struct {
	Name                 string              `json:"name"`
	Symbol               string              `json:"symbol"`
	Price                *float64            `json:"price"`
	MarketCap            *float64            `json:"marketCap"`
	Volume24h            *float64            `json:"volume24h"`
	VolumeChange24h      *float64            `json:"volumeChange24h"`
	PercentChange1h      *float64            `json:"percentChange1h"`
	PercentChange24h     *float64            `json:"percentChange24h"`
	PercentChange7d      *float64            `json:"percentChange7d"`
	PercentChange30d     *float64            `json:"percentChange30d"`
	PercentChange60d     *float64            `json:"percentChange60d"`
	PercentChange90d     *float64            `json:"percentChange90d"`
	CoinType             string              `json:"coinType"`
	Platform             string              `json:"platform"`
	Category             string              `json:"category"`
	PrimarySignal        string              `json:"primarySignal"`
	SignalStrength       *float64            `json:"signalStrength"`
	OverallScore         *float64            `json:"overallScore"`
	CompositeScore       *float64            `json:"compositeScore"`
	ChangeMomentum       *float64            `json:"changeMomentum"`
	MomentumAcceleration *float64            `json:"momentumAcceleration"`
	MomentumConsistency  *float64            `json:"momentumConsistency"`
	RiskAdjustedMomentum *float64            `json:"riskAdjustedMomentum"`
	PriceVolatility      *float64            `json:"priceVolatility"`
	VolatilityRisk       *float64            `json:"volatilityRisk"`
	LiquidityRisk        *float64            `json:"liquidityRisk"`
	ConcentrationRisk    *float64            `json:"concentrationRisk"`
	NVTScore             *float64            `json:"nvtScore"`
	MVRVScore            *float64            `json:"mvrvScore"`
	ScarcityScore        *float64            `json:"scarcityScore"`
	EfficiencyScore      *float64            `json:"efficiencyScore"`
	InvestmentScores     map[string]*float64 `json:"investmentScores"`
	MaxSupply            *float64            `json:"maxSupply"`
	CirculatingSupply    *float64            `json:"circulatingSupply"`
	TotalSupply          *float64            `json:"totalSupply"`
	AnnualInflation      *float64            `json:"annualInflation"`
	StockToFlow          *float64            `json:"stockToFlow"`
	DateAdded            string              `json:"dateAdded"`
	LastUpdated          string              `json:"lastUpdated"`
}

// Trading signal labels produced by the classifier.
const (
	SignalStrongBuy  = "STRONG_BUY"
	SignalBuy        = "BUY"
	SignalHold       = "HOLD"
	SignalSell       = "SELL"
	SignalStrongSell = "STRONG_SELL"
)

// SignalOrder lists the labels from most to least bullish, for stable
// ordering in reports and charts.
var SignalOrder = []string{SignalStrongBuy, SignalBuy, SignalHold, SignalSell, SignalStrongSell}
