package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okozak/pricetrail/internal/models"
	"github.com/okozak/pricetrail/internal/repository"
)

// Default retention policy, applied when the corresponding option is left
// unset.
const (
	DefaultMaxEntriesPerProduct = 15
	DefaultMaxAgeDays           = 90
)

// ErrEmptyProductID is returned by TrackPrice for an empty product ID, which
// would otherwise mint an unaddressable ledger key.
var ErrEmptyProductID = errors.New("product id must not be empty")

var oneHundred = decimal.NewFromInt(100)

// Tracker is the price history store. It keeps no state between calls: every
// operation loads the backing documents fresh, and mutating operations run
// the retention cleanup and write the documents back.
type Tracker struct {
	log        *slog.Logger
	repo       repository.Interface
	maxEntries int
	maxAge     time.Duration
}

// New creates a Tracker over the given repository. Non-positive limits fall
// back to the defaults.
func New(log *slog.Logger, repo repository.Interface, maxEntriesPerProduct, maxAgeDays int) *Tracker {
	if maxEntriesPerProduct <= 0 {
		maxEntriesPerProduct = DefaultMaxEntriesPerProduct
	}
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultMaxAgeDays
	}

	return &Tracker{
		log:        log,
		repo:       repo,
		maxEntries: maxEntriesPerProduct,
		maxAge:     time.Duration(maxAgeDays) * 24 * time.Hour,
	}
}

// TrackPrice records one price observation for a product and reports how it
// compares to the previous one. Prices are stored as given; the tracker does
// not second-guess its callers beyond requiring a product ID.
func (t *Tracker) TrackPrice(
	ctx context.Context,
	productID string,
	regularPrice decimal.Decimal,
	salePrice *decimal.Decimal,
	locationID, productName string,
) (*models.PriceChangeResult, error) {
	const opn = "tracker.TrackPrice"

	if productID == "" {
		return nil, fmt.Errorf("%s: %w", opn, ErrEmptyProductID)
	}

	ledger, err := t.repo.LoadLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load ledger: %w", opn, err)
	}

	now := time.Now()
	currentPrice := models.EffectivePrice(regularPrice, salePrice)

	record, found := ledger[productID]
	if !found {
		record = &models.ProductRecord{
			ProductName:  productName,
			LocationID:   locationID,
			LowestPrice:  currentPrice,
			HighestPrice: currentPrice,
			FirstSeen:    now,
			LastUpdated:  now,
		}
		ledger[productID] = record
	}

	record.PriceHistory = append(record.PriceHistory, models.PriceObservation{
		RegularPrice: regularPrice,
		SalePrice:    salePrice,
		CurrentPrice: currentPrice,
		Timestamp:    now,
		LocationID:   locationID,
	})
	record.LastUpdated = now

	if productName != "" {
		record.ProductName = productName
	}

	result := analyzeChange(record)

	// Aggregates track every price ever seen, independent of history pruning.
	if currentPrice.LessThan(record.LowestPrice) {
		record.LowestPrice = currentPrice
		result.IsLowestEver = true
	}
	if currentPrice.GreaterThan(record.HighestPrice) {
		record.HighestPrice = currentPrice
	}

	if len(record.PriceHistory) > t.maxEntries {
		record.PriceHistory = record.PriceHistory[len(record.PriceHistory)-t.maxEntries:]
	}

	if err = t.saveLedger(ctx, ledger); err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	t.log.DebugContext(ctx, "Recorded price observation",
		"product_id", productID,
		"current_price", currentPrice,
		"price_changed", result.PriceChanged,
	)

	return result, nil
}

// analyzeChange compares the freshly appended observation against the one
// before it. With fewer than two observations everything stays at its zero
// value.
func analyzeChange(record *models.ProductRecord) *models.PriceChangeResult {
	result := &models.PriceChangeResult{}

	history := record.PriceHistory
	if len(history) < 2 {
		return result
	}

	latest := history[len(history)-1]
	previous := history[len(history)-2]
	current := latest.CurrentPrice

	switch {
	case current.LessThan(previous.CurrentPrice):
		result.PriceChanged = true
		result.PriceDropped = true
		result.PriceDropAmount = previous.CurrentPrice.Sub(current)
		result.PriceDropPercentage = dropPercentage(previous.CurrentPrice, current)
	case current.GreaterThan(previous.CurrentPrice):
		result.PriceChanged = true
		result.PriceIncreased = true
	}

	result.IsOnSale = latest.OnSale()

	// Walk backward to the most recent observation at a different price.
	for i := len(history) - 2; i >= 0; i-- {
		if !history[i].CurrentPrice.Equal(current) {
			result.DaysSinceLastChange = wholeDays(history[i].Timestamp, latest.Timestamp)
			break
		}
	}

	return result
}

// dropPercentage computes the drop from previous to current as a percentage
// of previous. A non-positive previous price has no meaningful ratio and
// yields 0.
func dropPercentage(previous, current decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return previous.Sub(current).Div(previous).Mul(oneHundred)
}

// wholeDays returns the number of complete days between two instants.
func wholeDays(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// saveLedger applies the retention policy and persists the ledger.
func (t *Tracker) saveLedger(ctx context.Context, ledger models.Ledger) error {
	CleanupLedger(ledger, t.maxEntries, t.maxAge, time.Now())

	if err := t.repo.SaveLedger(ctx, ledger); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}

	return nil
}

// CleanupLedger applies the retention policy in place: observations older
// than maxAge are dropped, surviving histories are truncated to the newest
// maxEntries, and products left without observations are deleted outright so
// no empty records linger.
func CleanupLedger(ledger models.Ledger, maxEntries int, maxAge time.Duration, now time.Time) {
	cutoff := now.Add(-maxAge)

	for productID, record := range ledger {
		kept := record.PriceHistory[:0]
		for _, obs := range record.PriceHistory {
			if obs.Timestamp.After(cutoff) {
				kept = append(kept, obs)
			}
		}

		if len(kept) > maxEntries {
			kept = kept[len(kept)-maxEntries:]
		}

		if len(kept) == 0 {
			delete(ledger, productID)
			continue
		}

		record.PriceHistory = kept
	}
}

// sortedIDs returns the ledger keys in ascending order so that iteration is
// deterministic across calls.
func sortedIDs(ledger models.Ledger) []string {
	ids := make([]string, 0, len(ledger))
	for id := range ledger {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// displayName returns the recorded product name or the reporting default.
func displayName(record *models.ProductRecord) string {
	if record.ProductName == "" {
		return "Unknown Product"
	}
	return record.ProductName
}
