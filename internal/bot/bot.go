package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"gopkg.in/telebot.v4"
)

// Notifier polls for price-drop alerts on a fixed interval and pushes a
// digest to a Telegram chat.
type Notifier struct {
	bot       API
	log       *slog.Logger
	alerts    AlertSource
	chatID    int64
	threshold decimal.Decimal
	interval  time.Duration
}

func NewNotifier(
	log *slog.Logger,
	token string,
	chatID int64,
	alerts AlertSource,
	threshold float64,
	interval time.Duration,
) (*Notifier, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", bot.Me.Username)

	return &Notifier{
		bot:       bot,
		log:       log,
		alerts:    alerts,
		chatID:    chatID,
		threshold: decimal.NewFromFloat(threshold),
		interval:  interval,
	}, nil
}

// Run polls for alerts until the context is canceled. An immediate first
// poll runs before the ticker takes over.
func (n *Notifier) Run(ctx context.Context) {
	n.log.Info("Alert notifier is starting...", "interval", n.interval, "threshold", n.threshold)

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	n.notify(ctx)

	for {
		select {
		case <-ctx.Done():
			n.log.Info("Alert notifier is stopped...")
			return
		case <-ticker.C:
			n.notify(ctx)
		}
	}
}

// notify fetches current alerts and sends a digest when any fired.
func (n *Notifier) notify(ctx context.Context) {
	alerts, err := n.alerts.PriceAlerts(ctx, n.threshold)
	if err != nil {
		n.log.ErrorContext(ctx, "Failed to fetch price alerts", "error", err)
		return
	}

	if len(alerts) == 0 {
		return
	}

	if _, err = n.bot.Send(telebot.ChatID(n.chatID), formatAlerts(alerts)); err != nil {
		n.log.ErrorContext(ctx, "Failed to send alert digest", "error", err)
		return
	}

	n.log.InfoContext(ctx, "Sent alert digest", "alerts", len(alerts))
}
