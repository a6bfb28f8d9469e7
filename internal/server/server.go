package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/okozak/pricetrail/internal/models"
)

// Service is the tracker surface the HTTP layer exposes.
type Service interface {
	TrackPrice(
		ctx context.Context,
		productID string,
		regularPrice decimal.Decimal,
		salePrice *decimal.Decimal,
		locationID, productName string,
	) (*models.PriceChangeResult, error)
	PriceHistory(ctx context.Context, productID string, days int) ([]models.PriceObservation, error)
	PriceAlerts(ctx context.Context, thresholdPercentage decimal.Decimal) ([]models.Alert, error)
	TrackedProducts(ctx context.Context) ([]models.ProductSummary, error)
	HideProduct(ctx context.Context, productID string) (bool, error)
	UnhideProduct(ctx context.Context, productID string) (bool, error)
	RemoveProduct(ctx context.Context, productID string) (bool, error)
	HiddenProducts(ctx context.Context) ([]models.HiddenProductSummary, error)
	RemovedProducts(ctx context.Context) ([]models.RemovedProduct, error)
}

// Server serves the tracker API over HTTP.
type Server struct {
	*http.Server
	log *slog.Logger
}

// New builds the router and the underlying http.Server. defaultThreshold is
// the alert threshold applied when a caller omits the query parameter.
func New(log *slog.Logger, svc Service, addr string, defaultThreshold float64) *Server {
	handler := NewHandler(log, svc, defaultThreshold)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck // best-effort health response
	})

	handler.RegisterRoutes(router)

	return &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// Start begins serving requests and blocks until the listener closes.
func (s *Server) Start() error {
	s.log.Info("HTTP server is starting...", "addr", s.Addr)

	if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("HTTP server is stopping...")
	return s.Shutdown(ctx)
}
