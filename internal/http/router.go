// Package http wires the handlers into the chi router and carries the
// cross-cutting middleware: request logging, panic recovery, CORS and bearer
// authentication.
package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/quillbooks/quillbooks/internal/fault"
	"github.com/quillbooks/quillbooks/internal/http/auth"
	"github.com/quillbooks/quillbooks/internal/http/customers"
	"github.com/quillbooks/quillbooks/internal/http/expenses"
	"github.com/quillbooks/quillbooks/internal/http/invoices"
	"github.com/quillbooks/quillbooks/internal/http/items"
	"github.com/quillbooks/quillbooks/internal/http/payments"
	"github.com/quillbooks/quillbooks/internal/http/quotes"
	"github.com/quillbooks/quillbooks/internal/http/reports"
	"github.com/quillbooks/quillbooks/internal/http/respond"
	"github.com/quillbooks/quillbooks/internal/http/taxes"
	"github.com/quillbooks/quillbooks/internal/identity"
)

type Config struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
	Identity       *identity.Service

	Auth      *auth.Handler
	Customers *customers.Handler
	Items     *items.Handler
	Taxes     *taxes.Handler
	Quotes    *quotes.Handler
	Invoices  *invoices.Handler
	Payments  *payments.Handler
	Expenses  *expenses.Handler
	Reports   *reports.Handler
}

func New(cfg Config) http.Handler {
	router := chi.NewRouter()

	router.Use(hlog.NewHandler(cfg.Logger))
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", cfg.Auth.Routes)

		r.Group(func(r chi.Router) {
			r.Use(authenticator(cfg.Identity))

			r.Get("/auth/me", cfg.Auth.Me)
			r.Route("/customers", cfg.Customers.Routes)
			r.Route("/items", cfg.Items.Routes)
			r.Route("/taxes", cfg.Taxes.Routes)
			r.Route("/quotes", cfg.Quotes.Routes)
			r.Route("/invoices", cfg.Invoices.Routes)
			r.Route("/payments", cfg.Payments.Routes)
			r.Route("/expenses", cfg.Expenses.Routes)
			r.Route("/reports", cfg.Reports.Routes)
		})
	})

	return router
}

// authenticator resolves the bearer token to an identity and attaches it to
// the request context. Requests without a valid token never reach a handler.
func authenticator(svc *identity.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				respond.Error(w, r, fault.Unauthorized("missing bearer token"))
				return
			}

			id, err := svc.Authenticate(r.Context(), token)
			if err != nil {
				respond.Error(w, r, err)
				return
			}

			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.
					Stringer("user_id", id.User.ID).
					Stringer("organization_id", id.Organization.ID)
			})

			next.ServeHTTP(w, r.WithContext(identity.NewContext(r.Context(), id)))
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("request")
	})(next)
}
