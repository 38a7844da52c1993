package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/cityinfohq/cityinfo-api/internal/api"
	apimiddleware "github.com/cityinfohq/cityinfo-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceID)

	if app.metrics != nil {
		r.Use(app.metrics.Instrument)
	}

	r.Use(apimiddleware.RateLimit(
		app.config.Server.RateLimitPerSecond,
		app.config.Server.RateLimitBurst))

	allowedOrigins := app.config.Server.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Pagination", "Location"},
	}).Handler)

	cityHandler := api.NewCityHandler(app.catalogService, app.logger)
	poiHandler := api.NewPointOfInterestHandler(app.catalogService, app.logger)
	fileHandler := api.NewFileHandler(app.config.Files.Dir, app.logger)

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)
	cityAccess := apimiddleware.NewCityAccessMiddleware(app.authorizer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/cities", cityHandler.List)
		r.Post("/cities", cityHandler.Create)

		r.Route("/cities/{cityId}", func(r chi.Router) {
			r.Get("/", cityHandler.Get)

			// City-scoped mutations and the child collection require the
			// caller's city claim to match the target city.
			r.Group(func(r chi.Router) {
				r.Use(cityAccess.RequireCityAccess)

				r.Delete("/", cityHandler.Delete)

				r.Route("/pointsofinterest", func(r chi.Router) {
					r.Get("/", poiHandler.List)
					r.Post("/", poiHandler.Create)
					r.Get("/{poiId}", poiHandler.Get)
					r.Put("/{poiId}", poiHandler.Update)
					r.Patch("/{poiId}", poiHandler.Patch)
					r.Delete("/{poiId}", poiHandler.Delete)
				})
			})
		})

		r.Get("/files/{fileId}", fileHandler.Download)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Get("/ready", app.readinessHandler)

	if app.metrics != nil {
		r.Method(http.MethodGet, "/metrics", app.metrics.Handler())
	}

	return r
}

// readinessHandler reports whether the server can reach its backing store.
func (app *application) readinessHandler(w http.ResponseWriter, r *http.Request) {
	if app.db != nil {
		if err := app.db.PingContext(r.Context()); err != nil {
			app.logger.Error("readiness check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}
