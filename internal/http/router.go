package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/billbook/internal/http/bill"
	"github.com/MrJamesThe3rd/billbook/internal/http/customer"
	"github.com/MrJamesThe3rd/billbook/internal/http/export"
	"github.com/MrJamesThe3rd/billbook/internal/http/importcsv"
	"github.com/MrJamesThe3rd/billbook/internal/http/web"
	"github.com/MrJamesThe3rd/billbook/internal/metrics"
)

func New(
	m *metrics.Metrics,
	pages *web.Handler,
	billsV1 *bill.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	customersV1 *customer.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	// Metrics wrap Recoverer so recovered panics are counted as 500s.
	router.Use(m.Middleware)
	router.Use(middleware.Recoverer)

	router.Method(http.MethodGet, "/metrics", m.Handler())

	pages.Routes(router)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		r.Route("/bills", func(r chi.Router) {
			r.Route("/import", importV1.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				billsV1.Routes(r)
			})

			exportV1.Routes(r)
		})

		r.Route("/customers", customersV1.Routes)
	})

	return router
}
