package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceObservation is one recorded price snapshot for a product.
type PriceObservation struct {
	RegularPrice decimal.Decimal  `json:"regular_price"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	CurrentPrice decimal.Decimal  `json:"current_price"`
	Timestamp    time.Time        `json:"timestamp"`
	LocationID   string           `json:"location_id,omitempty"`
}

// OnSale reports whether the observation carries a sale price strictly
// below the regular price. A sale price of exactly 0 counts as absent here
// too, mirroring EffectivePrice, so a zero-sale observation is never
// reported as on sale.
func (o PriceObservation) OnSale() bool {
	return o.SalePrice != nil && !o.SalePrice.IsZero() && o.SalePrice.LessThan(o.RegularPrice)
}

// HasSalePrice reports whether any sale price was recorded, regardless of
// how it compares to the regular price.
func (o PriceObservation) HasSalePrice() bool {
	return o.SalePrice != nil
}

// EffectivePrice derives the price a shopper actually pays: the sale price
// when one is present and non-zero, otherwise the regular price. A sale
// price of exactly 0 counts as absent; callers of the original system
// depend on this, so it is preserved rather than fixed.
func EffectivePrice(regular decimal.Decimal, sale *decimal.Decimal) decimal.Decimal {
	if sale != nil && !sale.IsZero() {
		return *sale
	}
	return regular
}

// ProductRecord is the ledger entry for a single tracked product.
// LowestPrice and HighestPrice are running aggregates over every price ever
// observed; they are not recomputed when old observations are pruned.
type ProductRecord struct {
	ProductName  string             `json:"product_name,omitempty"`
	LocationID   string             `json:"location_id,omitempty"`
	PriceHistory []PriceObservation `json:"price_history"`
	LowestPrice  decimal.Decimal    `json:"lowest_price"`
	HighestPrice decimal.Decimal    `json:"highest_price"`
	FirstSeen    time.Time          `json:"first_seen"`
	LastUpdated  time.Time          `json:"last_updated"`
}

// Latest returns the most recent observation, or false when the history is
// empty.
func (r *ProductRecord) Latest() (PriceObservation, bool) {
	if len(r.PriceHistory) == 0 {
		return PriceObservation{}, false
	}
	return r.PriceHistory[len(r.PriceHistory)-1], true
}

// Ledger is the complete mapping of product ID to its price record.
type Ledger map[string]*ProductRecord
