package tracker

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okozak/pricetrail/internal/models"
)

// PriceHistory returns the product's observations from the last `days` days
// in chronological order. An unknown product yields an empty result, not an
// error.
func (t *Tracker) PriceHistory(ctx context.Context, productID string, days int) ([]models.PriceObservation, error) {
	const opn = "tracker.PriceHistory"

	ledger, err := t.repo.LoadLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load ledger: %w", opn, err)
	}

	// Empty results are empty slices, not nil, so they serialize as JSON
	// arrays.
	history := []models.PriceObservation{}

	record, found := ledger[productID]
	if !found {
		return history, nil
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	for _, obs := range record.PriceHistory {
		if obs.Timestamp.After(cutoff) {
			history = append(history, obs)
		}
	}

	return history, nil
}

// PriceAlerts reports every non-hidden product whose price dropped by at
// least thresholdPercentage between its two most recent observations, sorted
// by drop percentage, largest first.
func (t *Tracker) PriceAlerts(ctx context.Context, thresholdPercentage decimal.Decimal) ([]models.Alert, error) {
	const opn = "tracker.PriceAlerts"

	ledger, err := t.repo.LoadLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load ledger: %w", opn, err)
	}

	blacklist, err := t.repo.LoadBlacklist(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load blacklist: %w", opn, err)
	}

	alerts := []models.Alert{}
	for _, productID := range sortedIDs(ledger) {
		if blacklist.IsHidden(productID) {
			continue
		}

		record := ledger[productID]
		if len(record.PriceHistory) < 2 {
			continue
		}

		latest := record.PriceHistory[len(record.PriceHistory)-1]
		previous := record.PriceHistory[len(record.PriceHistory)-2]

		if !latest.CurrentPrice.LessThan(previous.CurrentPrice) {
			continue
		}

		percentage := dropPercentage(previous.CurrentPrice, latest.CurrentPrice)
		if percentage.LessThan(thresholdPercentage) {
			continue
		}

		alerts = append(alerts, models.Alert{
			ProductID:      productID,
			ProductName:    displayName(record),
			PreviousPrice:  previous.CurrentPrice,
			CurrentPrice:   latest.CurrentPrice,
			DropAmount:     previous.CurrentPrice.Sub(latest.CurrentPrice),
			DropPercentage: percentage,
			Timestamp:      latest.Timestamp,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].DropPercentage.GreaterThan(alerts[j].DropPercentage)
	})

	return alerts, nil
}

// TrackedProducts returns a summary for every product with at least one
// observation, most recently updated first. Hidden products are included;
// hiding only affects alerting.
func (t *Tracker) TrackedProducts(ctx context.Context) ([]models.ProductSummary, error) {
	const opn = "tracker.TrackedProducts"

	ledger, err := t.repo.LoadLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load ledger: %w", opn, err)
	}

	products := []models.ProductSummary{}
	for _, productID := range sortedIDs(ledger) {
		record := ledger[productID]

		latest, ok := record.Latest()
		if !ok {
			continue
		}

		products = append(products, models.ProductSummary{
			ProductID:    productID,
			ProductName:  displayName(record),
			CurrentPrice: latest.CurrentPrice,
			LowestPrice:  record.LowestPrice,
			HighestPrice: record.HighestPrice,
			IsOnSale:     latest.HasSalePrice(),
			LastUpdated:  record.LastUpdated,
			PriceEntries: len(record.PriceHistory),
		})
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].LastUpdated.After(products[j].LastUpdated)
	})

	return products, nil
}
