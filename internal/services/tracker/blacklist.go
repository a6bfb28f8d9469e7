package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/okozak/pricetrail/internal/models"
)

// HideProduct excludes a product from alert generation. It returns true if
// the hidden set changed, false if the product was already hidden. The
// product does not need to exist in the ledger.
func (t *Tracker) HideProduct(ctx context.Context, productID string) (bool, error) {
	const opn = "tracker.HideProduct"

	blacklist, err := t.repo.LoadBlacklist(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: failed to load blacklist: %w", opn, err)
	}

	if !blacklist.Hide(productID) {
		return false, nil
	}

	if err = t.repo.SaveBlacklist(ctx, blacklist); err != nil {
		return false, fmt.Errorf("%s: %w", opn, err)
	}

	t.log.InfoContext(ctx, "Product hidden from alerts", "product_id", productID)

	return true, nil
}

// UnhideProduct re-enables alerting for a product. It returns true if the
// hidden set changed, false if the product was not hidden.
func (t *Tracker) UnhideProduct(ctx context.Context, productID string) (bool, error) {
	const opn = "tracker.UnhideProduct"

	blacklist, err := t.repo.LoadBlacklist(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: failed to load blacklist: %w", opn, err)
	}

	if !blacklist.Unhide(productID) {
		return false, nil
	}

	if err = t.repo.SaveBlacklist(ctx, blacklist); err != nil {
		return false, fmt.Errorf("%s: %w", opn, err)
	}

	t.log.InfoContext(ctx, "Product unhidden", "product_id", productID)

	return true, nil
}

// RemoveProduct deletes a product from the ledger, records an audit entry
// (unless one already exists from an earlier removal) and drops the product
// from the hidden set. It returns false with no side effects when the
// product is not in the ledger.
func (t *Tracker) RemoveProduct(ctx context.Context, productID string) (bool, error) {
	const opn = "tracker.RemoveProduct"

	ledger, err := t.repo.LoadLedger(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: failed to load ledger: %w", opn, err)
	}

	record, found := ledger[productID]
	if !found {
		return false, nil
	}

	blacklist, err := t.repo.LoadBlacklist(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: failed to load blacklist: %w", opn, err)
	}

	if !blacklist.HasRemoval(productID) {
		name := record.ProductName
		if name == "" {
			name = "Unknown"
		}
		blacklist.RemovedProducts = append(blacklist.RemovedProducts, models.RemovedProduct{
			ProductID:   productID,
			ProductName: name,
			RemovedAt:   time.Now(),
		})
	}

	delete(ledger, productID)
	blacklist.Unhide(productID)

	// The blacklist goes first: if the second write fails, the audit entry
	// is already durable and the ledger still holds the product.
	if err = t.repo.SaveBlacklist(ctx, blacklist); err != nil {
		return false, fmt.Errorf("%s: %w", opn, err)
	}
	if err = t.saveLedger(ctx, ledger); err != nil {
		return false, fmt.Errorf("%s: %w", opn, err)
	}

	t.log.InfoContext(ctx, "Product removed from tracking", "product_id", productID)

	return true, nil
}

// HiddenProducts summarizes each hidden product that is still present in the
// ledger. Hidden IDs with no ledger record are skipped silently.
func (t *Tracker) HiddenProducts(ctx context.Context) ([]models.HiddenProductSummary, error) {
	const opn = "tracker.HiddenProducts"

	ledger, err := t.repo.LoadLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load ledger: %w", opn, err)
	}

	blacklist, err := t.repo.LoadBlacklist(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load blacklist: %w", opn, err)
	}

	hidden := []models.HiddenProductSummary{}
	for _, productID := range blacklist.HiddenProducts {
		record, found := ledger[productID]
		if !found {
			continue
		}

		summary := models.HiddenProductSummary{
			ProductID:   productID,
			ProductName: displayName(record),
			LastUpdated: record.LastUpdated,
		}
		if latest, ok := record.Latest(); ok {
			summary.LastPrice = latest.CurrentPrice
		}

		hidden = append(hidden, summary)
	}

	return hidden, nil
}

// RemovedProducts returns the removal audit trail in insertion order.
func (t *Tracker) RemovedProducts(ctx context.Context) ([]models.RemovedProduct, error) {
	const opn = "tracker.RemovedProducts"

	blacklist, err := t.repo.LoadBlacklist(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load blacklist: %w", opn, err)
	}

	if blacklist.RemovedProducts == nil {
		return []models.RemovedProduct{}, nil
	}

	return blacklist.RemovedProducts, nil
}
