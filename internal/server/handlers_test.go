package server_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okozak/pricetrail/internal/models"
	"github.com/okozak/pricetrail/internal/repository/jsonfile"
	"github.com/okozak/pricetrail/internal/server"
	"github.com/okozak/pricetrail/internal/services/tracker"
)

// newTestRouter wires a real tracker over temporary storage behind the HTTP
// handler, the way cmd/main does.
func newTestRouter(t *testing.T, defaultThreshold float64) chi.Router {
	t.Helper()

	tempDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := jsonfile.NewRepository(
		logger,
		filepath.Join(tempDir, "price_history.json"),
		filepath.Join(tempDir, "product_blacklist.json"),
	)
	trk := tracker.New(logger, repo, 0, 0)

	router := chi.NewRouter()
	server.NewHandler(logger, trk, defaultThreshold).RegisterRoutes(router)

	return router
}

func doRequest(t *testing.T, router chi.Router, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_TrackAndList(t *testing.T) {
	router := newTestRouter(t, 2.0)

	rec := doRequest(t, router, http.MethodPost, "/api/products/P1/track",
		`{"regular_price": "5.00", "product_name": "Eggs"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var first models.PriceChangeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.False(t, first.PriceChanged)

	rec = doRequest(t, router, http.MethodPost, "/api/products/P1/track",
		`{"regular_price": "5.00", "sale_price": "4.00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var second models.PriceChangeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.True(t, second.PriceDropped)
	assert.True(t, second.IsOnSale)
	assert.Equal(t, "20", second.PriceDropPercentage.String())

	rec = doRequest(t, router, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var products []models.ProductSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "P1", products[0].ProductID)
	assert.Equal(t, "Eggs", products[0].ProductName)
	assert.Equal(t, 2, products[0].PriceEntries)
}

func TestHandler_TrackRejectsBadBody(t *testing.T) {
	router := newTestRouter(t, 2.0)

	rec := doRequest(t, router, http.MethodPost, "/api/products/P1/track", `{"regular_price": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestHandler_History(t *testing.T) {
	router := newTestRouter(t, 2.0)

	doRequest(t, router, http.MethodPost, "/api/products/P1/track", `{"regular_price": "3.00"}`)

	t.Run("returns the observation window", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/products/P1/history?days=7", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var history []models.PriceObservation
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
		assert.Len(t, history, 1)
	})

	t.Run("rejects a bad days parameter", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/products/P1/history?days=soon", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product is an empty array", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/products/nope/history", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestHandler_EmptyListsAreArrays(t *testing.T) {
	router := newTestRouter(t, 2.0)

	// List endpoints must render JSON arrays even when nothing is tracked.
	for _, target := range []string{
		"/api/products",
		"/api/products/hidden",
		"/api/products/removed",
		"/api/alerts",
	} {
		rec := doRequest(t, router, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.JSONEq(t, "[]", rec.Body.String(), target)
	}
}

func TestHandler_AlertsDefaultThreshold(t *testing.T) {
	// Default threshold of 10%: a 20% drop alerts, a 5% drop does not.
	router := newTestRouter(t, 10.0)

	doRequest(t, router, http.MethodPost, "/api/products/big/track", `{"regular_price": "10.00"}`)
	doRequest(t, router, http.MethodPost, "/api/products/big/track", `{"regular_price": "8.00"}`)
	doRequest(t, router, http.MethodPost, "/api/products/small/track", `{"regular_price": "10.00"}`)
	doRequest(t, router, http.MethodPost, "/api/products/small/track", `{"regular_price": "9.50"}`)

	t.Run("omitted threshold uses the configured default", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/alerts", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var alerts []models.Alert
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
		require.Len(t, alerts, 1)
		assert.Equal(t, "big", alerts[0].ProductID)
	})

	t.Run("explicit threshold overrides it", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/alerts?threshold=1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var alerts []models.Alert
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
		assert.Len(t, alerts, 2)
	})

	t.Run("rejects a non-numeric threshold", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/alerts?threshold=lots", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_HideUnhideRemove(t *testing.T) {
	router := newTestRouter(t, 2.0)

	doRequest(t, router, http.MethodPost, "/api/products/P1/track",
		`{"regular_price": "5.00", "product_name": "Cheese"}`)

	rec := doRequest(t, router, http.MethodPost, "/api/products/P1/hide", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"changed": true}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/api/products/P1/hide", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"changed": false}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/api/products/hidden", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var hidden []models.HiddenProductSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hidden))
	require.Len(t, hidden, 1)
	assert.Equal(t, "Cheese", hidden[0].ProductName)

	rec = doRequest(t, router, http.MethodPost, "/api/products/P1/unhide", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"changed": true}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodDelete, "/api/products/P1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/api/products/P1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/products/removed", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var removed []models.RemovedProduct
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &removed))
	require.Len(t, removed, 1)
	assert.Equal(t, "P1", removed[0].ProductID)
}
