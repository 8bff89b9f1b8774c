package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/big-riz/HandcashIntegration/api/controllers"
	webhookcontrollers "github.com/big-riz/HandcashIntegration/api/controllers/webhooks"
	"github.com/big-riz/HandcashIntegration/api/middleware"
	"github.com/big-riz/HandcashIntegration/internal/collections"
	"github.com/big-riz/HandcashIntegration/internal/inventory"
	"github.com/big-riz/HandcashIntegration/internal/items"
	"github.com/big-riz/HandcashIntegration/internal/minting"
	"github.com/big-riz/HandcashIntegration/internal/payments"
	"github.com/big-riz/HandcashIntegration/internal/users"
	handcashwebhook "github.com/big-riz/HandcashIntegration/internal/webhooks/handcash"
	"github.com/big-riz/HandcashIntegration/pkg/auth/session"
	"github.com/big-riz/HandcashIntegration/pkg/config"
	"github.com/big-riz/HandcashIntegration/pkg/db"
	"github.com/big-riz/HandcashIntegration/pkg/handcash"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
	"github.com/big-riz/HandcashIntegration/pkg/qr"
	"github.com/big-riz/HandcashIntegration/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database *db.Client,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	sessions *session.Manager,
	client *handcash.Client,
	minter *handcash.Minter,
	usersRepo *users.Repository,
	collectionsRepo *collections.Repository,
	itemsRepo *items.Repository,
	paymentsService *payments.Service,
	mintService *minting.Service,
	inventoryFetcher *inventory.Fetcher,
	webhookService *handcashwebhook.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	qrGen := qr.NewGenerator(0)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, database, redisClient, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Get("/auth", controllers.AuthConnect(cfg, client, usersRepo, sessions, logg))

	r.Post("/api/webhooks/handcash", webhookcontrollers.HandCashWebhook(webhookService, logg))

	// Outside the session guard so a stale cookie can still be revoked.
	r.Post("/api/logout", controllers.Logout(cfg, usersRepo, sessions, logg))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Session, sessions, logg))

		r.Get("/profile", controllers.Profile(client, logg))

		r.Route("/payment-requests", func(r chi.Router) {
			r.Post("/", controllers.PaymentRequestCreate(paymentsService, logg))
			r.Get("/", controllers.PaymentRequestList(paymentsService, logg))
			r.Get("/{requestId}/qr", controllers.PaymentRequestQR(paymentsService, qrGen, logg))
		})

		r.Route("/items", func(r chi.Router) {
			r.Post("/", controllers.ItemMint(mintService, logg))
			r.Get("/", controllers.ItemList(itemsRepo, minter, logg))
		})

		r.Get("/collections", controllers.CollectionList(collectionsRepo, inventoryFetcher, logg))
		r.Get("/inventory", controllers.Inventory(inventoryFetcher, logg))
	})

	return r
}
