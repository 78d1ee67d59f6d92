package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rmoralesdev/salon-backoffice/api/controllers"
	"github.com/rmoralesdev/salon-backoffice/api/middleware"
	"github.com/rmoralesdev/salon-backoffice/internal/booking"
	"github.com/rmoralesdev/salon-backoffice/internal/catalog"
	"github.com/rmoralesdev/salon-backoffice/internal/customers"
	"github.com/rmoralesdev/salon-backoffice/internal/inventory"
	"github.com/rmoralesdev/salon-backoffice/internal/photos"
	"github.com/rmoralesdev/salon-backoffice/internal/settings"
	"github.com/rmoralesdev/salon-backoffice/pkg/config"
	"github.com/rmoralesdev/salon-backoffice/pkg/db"
	"github.com/rmoralesdev/salon-backoffice/pkg/logger"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Customers customers.Service
	Catalog   catalog.Service
	Inventory inventory.Service
	Booking   booking.Service
	Photos    photos.Service
	Settings  settings.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	httpMetrics := middleware.NewHTTPMetrics(registry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		httpMetrics.Middleware(),
		middleware.CORS(cfg.HTTP.CORSAllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", controllers.ClientsList(svcs.Customers, logg))
			r.Post("/", controllers.ClientCreate(svcs.Customers, logg))
			r.Get("/{id}", controllers.ClientDetail(svcs.Customers, logg))
			r.Put("/{id}", controllers.ClientUpdate(svcs.Customers, logg))
			r.Delete("/{id}", controllers.ClientDelete(svcs.Customers, logg))

			r.Get("/{id}/photos", controllers.PhotosList(svcs.Photos, logg))
			r.Post("/{id}/photos", controllers.PhotoUpload(svcs.Photos, logg, cfg.Photos))
			r.Delete("/photos/{photoId}", controllers.PhotoDelete(svcs.Photos, logg))
		})

		r.Get("/photos/*", controllers.PhotoServe(svcs.Photos, logg))

		r.Route("/services", func(r chi.Router) {
			r.Get("/", controllers.ServicesList(svcs.Catalog, logg))
			r.Post("/", controllers.ServiceCreate(svcs.Catalog, logg))
			r.Get("/{id}", controllers.ServiceDetail(svcs.Catalog, logg))
			r.Put("/{id}", controllers.ServiceUpdate(svcs.Catalog, logg))
			r.Delete("/{id}", controllers.ServiceDelete(svcs.Catalog, logg))
			r.Post("/{id}/activate", controllers.ServiceSetActive(svcs.Catalog, logg, true))
			r.Post("/{id}/deactivate", controllers.ServiceSetActive(svcs.Catalog, logg, false))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(svcs.Inventory, logg))
			r.Post("/", controllers.ProductCreate(svcs.Inventory, logg))
			r.Get("/{id}", controllers.ProductDetail(svcs.Inventory, logg))
			r.Put("/{id}", controllers.ProductUpdate(svcs.Inventory, logg))
			r.Delete("/{id}", controllers.ProductDelete(svcs.Inventory, logg))
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", controllers.AppointmentsList(svcs.Booking, logg))
			r.Post("/", controllers.AppointmentCreate(svcs.Booking, logg))
			r.Get("/{id}", controllers.AppointmentDetail(svcs.Booking, logg))
			r.Put("/{id}", controllers.AppointmentUpdate(svcs.Booking, logg))
			r.Delete("/{id}", controllers.AppointmentDelete(svcs.Booking, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.SettingsList(svcs.Settings, logg))
			r.Get("/{key}", controllers.SettingGet(svcs.Settings, logg))
			r.Put("/{key}", controllers.SettingPut(svcs.Settings, logg))
		})

		r.Get("/backups", controllers.BackupsList(svcs.Settings, logg))
	})

	return r
}
