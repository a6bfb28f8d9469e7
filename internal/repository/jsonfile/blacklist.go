package jsonfile

import (
	"context"
	"encoding/json"

	"github.com/okozak/pricetrail/internal/models"
)

// LoadBlacklist implements the interface method for reading the blacklist
// document from disk.
func (r *Repository) LoadBlacklist(ctx context.Context) (*models.Blacklist, error) {
	blacklist := &models.Blacklist{}

	data := r.readDocument(ctx, r.blacklistPath)
	if len(data) == 0 {
		return blacklist, nil
	}

	if err := json.Unmarshal(data, blacklist); err != nil {
		r.log.WarnContext(ctx, "blacklist file is corrupt, starting from empty state",
			"path", r.blacklistPath, "error", err)
		return &models.Blacklist{}, nil
	}

	return blacklist, nil
}

// SaveBlacklist implements the interface method for replacing the blacklist
// document on disk.
func (r *Repository) SaveBlacklist(_ context.Context, blacklist *models.Blacklist) error {
	const opn = "repository.jsonfile.SaveBlacklist"
	return r.writeDocument(opn, r.blacklistPath, blacklist)
}
