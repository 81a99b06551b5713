// Package api sets up and starts the API server with routing, middleware,
// and Swagger documentation.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/matt-dz/recipehub/docs"
	"github.com/matt-dz/recipehub/internal/api/middleware"
	"github.com/matt-dz/recipehub/internal/api/routes/collections"
	"github.com/matt-dz/recipehub/internal/api/routes/draft"
	"github.com/matt-dz/recipehub/internal/api/routes/events"
	"github.com/matt-dz/recipehub/internal/api/routes/ping"
	"github.com/matt-dz/recipehub/internal/api/routes/recipes"
	"github.com/matt-dz/recipehub/internal/env"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func addDocs(r *chi.Mux) {
	swagger := httpSwagger.Handler(
		httpSwagger.URL("/api/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)

	r.Mount("/api/swagger", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodOptions:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			swagger.ServeHTTP(w, req)
		default:
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	}))
}

func addRoutes(router *chi.Mux) {
	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping.HandlePing)

		r.Group(func(r chi.Router) {
			r.Use(middleware.IdentifyProfile)

			r.Route("/collections/{name}", func(r chi.Router) {
				r.Get("/", collections.GetCollection)
				r.Post("/toggle", collections.ToggleRecipe)
				r.Delete("/{id}", collections.RemoveRecipe)
			})

			r.Route("/recipes", func(r chi.Router) {
				r.Post("/", recipes.SubmitRecipe)
				r.Get("/random", recipes.RandomRecipes)
				r.Get("/search", recipes.SearchRecipes)
				r.Get("/suggest", recipes.SuggestRecipes)
				r.Get("/by-ingredients", recipes.RecipesByIngredients)
				r.Get("/surprise", recipes.SurpriseRecipe)
				r.Get("/{id}", recipes.GetRecipe)
				r.Get("/{id}/form", recipes.EditRecipe)
				r.Delete("/{id}", recipes.DeleteRecipe)
			})

			r.Route("/feed", func(r chi.Router) {
				r.Get("/", recipes.GetFeed)
				r.Put("/category", recipes.SelectCategory)
			})

			r.Route("/draft", func(r chi.Router) {
				r.Get("/", draft.GetDraft)
				r.Put("/", draft.SaveDraft)
				r.Delete("/", draft.DeleteDraft)
			})

			r.Get("/events", events.StreamEvents)
		})
	})
}

// NewRouter returns the API handler for env.
func NewRouter(env *env.Env) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(env.Logger))
	router.Use(middleware.InjectEnv(env))
	router.Use(middleware.AddCors)

	addRoutes(router)
	addDocs(router)
	return router
}

// Start serves the API until ctx is done, then shuts down gracefully.
//
//	@title			Recipehub API
//	@version		1.0
//	@description	API Server for the Recipehub application.
//
//	@BasePath		/
func Start(ctx context.Context, env *env.Env) error {
	server := &http.Server{
		Addr:              env.Config.Server.Addr,
		Handler:           NewRouter(env),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		env.Logger.Info(fmt.Sprintf("Listening at %s", server.Addr))
		env.Logger.Info(fmt.Sprintf("Swagger UI available at %s/api/swagger/index.html", env.Config.Server.HostOrigin))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	env.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		env.Logger.Error("server stopped", slog.Any("error", err))
		return err
	}
	return nil
}
