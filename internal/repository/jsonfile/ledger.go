package jsonfile

import (
	"context"
	"encoding/json"

	"github.com/okozak/pricetrail/internal/models"
)

// LoadLedger implements the interface method for reading the full price
// ledger from disk.
func (r *Repository) LoadLedger(ctx context.Context) (models.Ledger, error) {
	ledger := models.Ledger{}

	data := r.readDocument(ctx, r.ledgerPath)
	if len(data) == 0 {
		return ledger, nil
	}

	if err := json.Unmarshal(data, &ledger); err != nil {
		r.log.WarnContext(ctx, "ledger file is corrupt, starting from empty state",
			"path", r.ledgerPath, "error", err)
		return models.Ledger{}, nil
	}

	return ledger, nil
}

// SaveLedger implements the interface method for replacing the full price
// ledger on disk.
func (r *Repository) SaveLedger(_ context.Context, ledger models.Ledger) error {
	const opn = "repository.jsonfile.SaveLedger"
	return r.writeDocument(opn, r.ledgerPath, ledger)
}
