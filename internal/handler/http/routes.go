package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(h.withRateLimit(h.rate.AuthLimit, h.rate.AuthWindow))
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// collection routes require a valid bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.withRateLimit(h.rate.APILimit, h.rate.APIWindow))
		r.Get("/api/collections/{collection}", h.listCollection)
		r.Post("/api/collections/{collection}/items", h.pushItem)
		r.Delete("/api/collections/{collection}/items/{resourceID}", h.removeItem)
		r.Delete("/api/collections/{collection}", h.clearCollection)
	})

	router.Get("/api/version", h.getServerVersion)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
