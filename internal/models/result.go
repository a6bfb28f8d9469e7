package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceChangeResult - how the newest observation compares to the one before it.
type PriceChangeResult struct {
	PriceChanged        bool            `json:"price_changed"`
	PriceDropped        bool            `json:"price_dropped"`
	PriceIncreased      bool            `json:"price_increased"`
	IsOnSale            bool            `json:"is_on_sale"`
	IsLowestEver        bool            `json:"is_lowest_ever"`
	PriceDropAmount     decimal.Decimal `json:"price_drop_amount"`
	PriceDropPercentage decimal.Decimal `json:"price_drop_percentage"`
	DaysSinceLastChange int             `json:"days_since_last_change"`
}

// Alert - a price drop between a product's two most recent observations that
// crossed the caller's threshold.
type Alert struct {
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	PreviousPrice  decimal.Decimal `json:"previous_price"`
	CurrentPrice   decimal.Decimal `json:"current_price"`
	DropAmount     decimal.Decimal `json:"drop_amount"`
	DropPercentage decimal.Decimal `json:"drop_percentage"`
	Timestamp      time.Time       `json:"timestamp"`
}

// ProductSummary - one tracked product with its latest and aggregate prices.
type ProductSummary struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	LowestPrice  decimal.Decimal `json:"lowest_price"`
	HighestPrice decimal.Decimal `json:"highest_price"`
	IsOnSale     bool            `json:"is_on_sale"`
	LastUpdated  time.Time       `json:"last_updated"`
	PriceEntries int             `json:"price_entries"`
}

// HiddenProductSummary - a hidden product that is still present in the ledger.
type HiddenProductSummary struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	LastPrice   decimal.Decimal `json:"last_price"`
	LastUpdated time.Time       `json:"last_updated"`
}
