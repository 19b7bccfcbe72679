package api

import (
	"finance-tracker/src/auth"
	"finance-tracker/src/handlers"
	"finance-tracker/src/ledger"
	"finance-tracker/src/logger"
	"finance-tracker/src/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Credentials *auth.Credentials
	Tokens      *auth.TokenService
	Ledger      *ledger.Ledger
	Store       handlers.Pinger
}

type Options struct {
	CORSOrigins []string
	DemoMode    bool
}

func NewRouter(deps Deps, opts Options) *chi.Mux {
	r := chi.NewRouter()
	r.Use(logger.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(opts.CORSOrigins))
	r.Use(middleware.DemoModeMiddleware(opts.DemoMode))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health())
		r.Get("/ready", handlers.Ready(deps.Store))

		r.Post("/auth/register", handlers.Register(deps.Credentials, deps.Tokens))
		r.Post("/auth/login", handlers.Login(deps.Credentials, deps.Tokens))

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(deps.Tokens)).Group(func(r chi.Router) {
			// User
			r.Get("/user", handlers.GetCurrentUser(deps.Credentials))
			r.Delete("/user", handlers.DeleteUser(deps.Credentials))

			// Transactions
			r.Get("/transactions", handlers.GetTransactions(deps.Ledger))
			r.Post("/transactions", handlers.CreateTransaction(deps.Ledger))
			r.Get("/transactions/{transaction_id}", handlers.GetTransaction(deps.Ledger))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(deps.Ledger))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(deps.Ledger))

			// Analytics
			r.Get("/analytics", handlers.GetAnalytics(deps.Ledger))
			r.Get("/summary", handlers.GetSummary(deps.Ledger))
		})
	})

	return r
}
