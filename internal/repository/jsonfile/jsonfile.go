package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Repository persists the price ledger and the blacklist as two independent
// pretty-printed JSON documents. Every load reads the whole file and every
// save rewrites it; the store assumes a single writer process.
type Repository struct {
	log           *slog.Logger
	ledgerPath    string
	blacklistPath string
}

// NewRepository creates a Repository backed by the given file paths. The
// files do not need to exist yet; they are created on first save.
func NewRepository(log *slog.Logger, ledgerPath, blacklistPath string) *Repository {
	return &Repository{log: log, ledgerPath: ledgerPath, blacklistPath: blacklistPath}
}

// readDocument returns the raw bytes of the document at path, or nil when
// the file is missing or unreadable. A missing file is the normal first-run
// case; anything else is logged, since the caller will proceed from an
// empty state either way.
func (r *Repository) readDocument(ctx context.Context, path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			r.log.WarnContext(ctx, "backing file is unreadable, starting from empty state",
				"path", path, "error", err)
		}
		return nil
	}

	return data
}

// writeDocument serializes doc and replaces the file at path. Unlike reads,
// a write failure is surfaced: silently losing observations would be worse
// than aborting the call.
func (r *Repository) writeDocument(opn, path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: failed to encode document: %w", opn, err)
	}

	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%s: failed to write %s: %w", opn, path, err)
	}

	return nil
}
