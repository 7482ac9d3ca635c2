// Package storefront assembles the shop's HTTP surface: catalog
// browsing, the cart, checkout and order history on one router.
package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"WatchWorks/internal/catalog"
	"WatchWorks/internal/ledger"
	"WatchWorks/internal/payment"
	"WatchWorks/pkg/kit"
)

type Deps struct {
	Catalog  *catalog.Store
	Ledger   *ledger.Ledger
	Store    ledger.Store
	Payments payment.Provider
}

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	RateLimit  int
	RateWindow time.Duration
}

func NewHandler(deps Deps, httpDeps HTTPDeps) http.Handler {
	catalogSrv := &catalog.Server{Store: deps.Catalog, Log: httpDeps.Log}
	ledgerSrv := &ledger.Server{
		Ledger:   deps.Ledger,
		Catalog:  deps.Catalog,
		Payments: deps.Payments,
		Log:      httpDeps.Log,
	}

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", readyz(deps.Store, httpDeps.Log))

	r.Mount("/products", catalogSrv.Routes())

	r.Group(func(cr chi.Router) {
		if httpDeps.RateLimit > 0 {
			limiter := kit.NewIPRateLimiter(httpDeps.RateLimit, httpDeps.RateWindow)
			cr.Use(limiter.Middleware)
		}

		cr.Get("/cart", ledgerSrv.CartHandler())
		cr.Post("/cart/items", ledgerSrv.AddItemHandler())
		cr.Put("/cart/items/{id}", ledgerSrv.UpdateItemHandler())
		cr.Delete("/cart/items/{id}", ledgerSrv.RemoveItemHandler())
		cr.Delete("/cart", ledgerSrv.ClearCartHandler())
		cr.Post("/checkout", ledgerSrv.CheckoutHandler())
		cr.Get("/orders", ledgerSrv.OrdersHandler())
	})

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	if deps.Log != nil {
		r.Use(kit.Logging(deps.Log))
	}
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.RequireBearer(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func readyz(store ledger.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			if log != nil {
				log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
