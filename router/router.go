package router

import (
	"net/http"

	_ "account-opening-api/docs"
	"account-opening-api/handler"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(accountHandler *handler.AccountHandler, healthHandler *handler.HealthHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.StripSlashes)
	r.Use(handler.RequestLogger)

	r.Get("/health", healthHandler.HealthCheck)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/accounts", handler.ErrorHandlingMiddleware(accountHandler.CreateAccount))
		r.Get("/accounts/{accountNumber}", handler.ErrorHandlingMiddleware(accountHandler.GetAccount))
		r.Get("/customers/{customerID}/accounts", handler.ErrorHandlingMiddleware(accountHandler.ListCustomerAccounts))
	})

	return r
}
