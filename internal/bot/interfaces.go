package bot

import (
	"context"

	"github.com/shopspring/decimal"
	"gopkg.in/telebot.v4"

	"github.com/okozak/pricetrail/internal/models"
)

type API interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// AlertSource yields the current price-drop alerts at a threshold.
type AlertSource interface {
	PriceAlerts(ctx context.Context, thresholdPercentage decimal.Decimal) ([]models.Alert, error)
}
