package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Cart         *CartHandler
	Configurator *ConfiguratorHandler
	Contact      *ContactHandler
}

func NewRouter(h Handlers, logger *zap.Logger, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/configurator", func(r chi.Router) {
			r.Get("/", h.Configurator.Options)
			r.Post("/quote", h.Configurator.Quote)
		})

		r.With(SessionMiddleware).Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/items", h.Cart.AddItem)
			r.Post("/items/{index}/increment", h.Cart.IncrementQuantity)
			r.Post("/items/{index}/decrement", h.Cart.DecrementQuantity)
			r.Delete("/items/{index}", h.Cart.RemoveItem)
			r.Post("/checkout", h.Cart.Checkout)
		})

		r.Post("/contact", h.Contact.Submit)
	})

	return otelhttp.NewHandler(r, "storefront")
}
