package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/atelier-hq/atelier/internal/auth"
	"github.com/atelier-hq/atelier/internal/items"
	"github.com/atelier-hq/atelier/internal/observability"
	"github.com/atelier-hq/atelier/internal/users"
	"github.com/atelier-hq/atelier/internal/utils"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger       *slog.Logger
	Config       *Config
	AuthHandler  *auth.Handler
	UsersHandler *users.Handler
	ItemsHandler *items.Handler
	UtilsHandler *utils.Handler
	Metrics      *observability.Metrics
}

// NewRouter constructs the chi.Router with the API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		params.AuthHandler.MountRoutes(api)
		api.Route("/users", params.UsersHandler.MountRoutes)
		api.Route("/items", params.ItemsHandler.MountRoutes)
		api.Route("/utils", params.UtilsHandler.MountRoutes)
		if params.Config.IsDevelopment() {
			api.Route("/private", params.UsersHandler.MountPrivateRoutes)
		}
	})

	return r
}
