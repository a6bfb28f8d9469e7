package repository

import (
	"context"

	"github.com/okozak/pricetrail/internal/models"
)

// Interface is the storage contract the tracker depends on. Both documents
// are loaded and stored whole; there is no partial update.
type Interface interface {
	// LoadLedger reads the full price ledger. A missing or unreadable
	// backing document yields an empty ledger, never an error.
	LoadLedger(ctx context.Context) (models.Ledger, error)
	// SaveLedger writes the full price ledger, replacing the previous
	// document.
	SaveLedger(ctx context.Context, ledger models.Ledger) error
	// LoadBlacklist reads the blacklist document, degrading to an empty
	// blacklist the same way LoadLedger does.
	LoadBlacklist(ctx context.Context) (*models.Blacklist, error)
	// SaveBlacklist writes the full blacklist document.
	SaveBlacklist(ctx context.Context, blacklist *models.Blacklist) error
}
