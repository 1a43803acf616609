// Package notify pushes a run summary to Telegram when a bot is configured.
package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/mwenyemali/smartcoins/internal/rank"
	"github.com/mwenyemali/smartcoins/models"
)

// Notifier sends analysis summaries to a Telegram chat. A nil Notifier is
// valid and sends nothing.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// New connects the bot. Returns nil when no token is configured.
func New(token string, chatID int64, logger zerolog.Logger) (*Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting telegram bot: %w", err)
	}
	return &Notifier{
		bot:    bot,
		chatID: chatID,
		logger: logger.With().Str("component", "notify").Logger(),
	}, nil
}

// SendSummary pushes a short run summary: coin count, signal tallies and the
// best picks.
func (n *Notifier) SendSummary(recs []models.CoinRecord, topN int) error {
	if n == nil {
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, Summary(recs, topN))
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("sending telegram summary: %w", err)
	}
	n.logger.Info().Int64("chat_id", n.chatID).Msg("Summary sent")
	return nil
}

// Summary formats the notification text.
func Summary(recs []models.CoinRecord, topN int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SmartCoins analysis: %d coins\n\n", len(recs))

	counts := rank.CountBySignal(recs)
	for _, sig := range models.SignalOrder {
		if n := counts[sig]; n > 0 {
			fmt.Fprintf(&b, "%s: %d\n", sig, n)
		}
	}

	top := rank.TopN(recs, rank.ByInvestmentScore, rank.Options{N: topN})
	if len(top) > 0 {
		fmt.Fprintf(&b, "\nTop picks:\n")
		for i := range top {
			fmt.Fprintf(&b, "%d. %s %.2f (%s)\n", i+1, top[i].Symbol, top[i].InvestmentScore, top[i].PredictedSignal)
		}
	}
	return b.String()
}
