package jsonfile_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okozak/pricetrail/internal/models"
	"github.com/okozak/pricetrail/internal/repository/jsonfile"
)

// newTestRepo is a helper that creates a repository over temporary files and
// returns both paths for direct inspection.
func newTestRepo(t *testing.T) (*jsonfile.Repository, string, string) {
	t.Helper()

	tempDir := t.TempDir()
	ledgerPath := filepath.Join(tempDir, "price_history.json")
	blacklistPath := filepath.Join(tempDir, "product_blacklist.json")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return jsonfile.NewRepository(logger, ledgerPath, blacklistPath), ledgerPath, blacklistPath
}

func TestRepository_LedgerRoundTrip(t *testing.T) {
	repo, ledgerPath, _ := newTestRepo(t)
	ctx := context.Background()

	t.Run("missing file loads as empty ledger", func(t *testing.T) {
		ledger, err := repo.LoadLedger(ctx)
		require.NoError(t, err)
		assert.Empty(t, ledger)
	})

	seen := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)
	sale := decimal.RequireFromString("3.49")
	ledger := models.Ledger{
		"0001111041700": {
			ProductName: "Whole Milk",
			LocationID:  "01400943",
			PriceHistory: []models.PriceObservation{
				{
					RegularPrice: decimal.RequireFromString("4.29"),
					SalePrice:    &sale,
					CurrentPrice: sale,
					Timestamp:    seen,
					LocationID:   "01400943",
				},
			},
			LowestPrice:  sale,
			HighestPrice: decimal.RequireFromString("4.29"),
			FirstSeen:    seen,
			LastUpdated:  seen,
		},
	}

	t.Run("save and reload", func(t *testing.T) {
		require.NoError(t, repo.SaveLedger(ctx, ledger))

		loaded, err := repo.LoadLedger(ctx)
		require.NoError(t, err)
		require.Contains(t, loaded, "0001111041700")

		record := loaded["0001111041700"]
		assert.Equal(t, "Whole Milk", record.ProductName)
		require.Len(t, record.PriceHistory, 1)
		assert.True(t, record.PriceHistory[0].CurrentPrice.Equal(sale))
		require.NotNil(t, record.PriceHistory[0].SalePrice)
		assert.True(t, record.LowestPrice.Equal(sale))
		assert.True(t, record.FirstSeen.Equal(seen))
	})

	t.Run("document is pretty-printed JSON keyed by product id", func(t *testing.T) {
		data, err := os.ReadFile(ledgerPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n  \"0001111041700\"")

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Contains(t, raw, "0001111041700")
	})

	t.Run("corrupt file loads as empty ledger", func(t *testing.T) {
		require.NoError(t, os.WriteFile(ledgerPath, []byte("][ nope"), 0o644))

		loaded, err := repo.LoadLedger(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})
}

func TestRepository_BlacklistRoundTrip(t *testing.T) {
	repo, _, blacklistPath := newTestRepo(t)
	ctx := context.Background()

	t.Run("missing file loads as empty blacklist", func(t *testing.T) {
		blacklist, err := repo.LoadBlacklist(ctx)
		require.NoError(t, err)
		assert.Empty(t, blacklist.HiddenProducts)
		assert.Empty(t, blacklist.RemovedProducts)
	})

	removedAt := time.Date(2026, 8, 20, 18, 0, 0, 0, time.UTC)
	blacklist := &models.Blacklist{
		HiddenProducts: []string{"0001111041700"},
		RemovedProducts: []models.RemovedProduct{
			{ProductID: "0001111060903", ProductName: "Ice Cream", RemovedAt: removedAt},
		},
	}

	t.Run("save and reload", func(t *testing.T) {
		require.NoError(t, repo.SaveBlacklist(ctx, blacklist))

		loaded, err := repo.LoadBlacklist(ctx)
		require.NoError(t, err)
		assert.Equal(t, blacklist.HiddenProducts, loaded.HiddenProducts)
		require.Len(t, loaded.RemovedProducts, 1)
		assert.Equal(t, "Ice Cream", loaded.RemovedProducts[0].ProductName)
		assert.True(t, loaded.RemovedProducts[0].RemovedAt.Equal(removedAt))
	})

	t.Run("corrupt file loads as empty blacklist", func(t *testing.T) {
		require.NoError(t, os.WriteFile(blacklistPath, []byte("not json at all"), 0o644))

		loaded, err := repo.LoadBlacklist(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded.HiddenProducts)
	})
}

func TestRepository_SaveFailsLoudly(t *testing.T) {
	tempDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Pointing a document at a directory makes the write fail; unlike
	// reads, that error must reach the caller.
	repo := jsonfile.NewRepository(logger, tempDir, filepath.Join(tempDir, "blacklist.json"))

	err := repo.SaveLedger(context.Background(), models.Ledger{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository.jsonfile.SaveLedger")
}
