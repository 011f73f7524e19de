package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/recipebook/apiserver/config"
	"github.com/recipebook/apiserver/internal/catalog"
	"github.com/recipebook/apiserver/internal/db"
	"github.com/recipebook/apiserver/internal/handlers"
	"github.com/recipebook/apiserver/internal/services"
	"github.com/recipebook/apiserver/internal/store"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET_KEY is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	favoriteRepo := store.NewFavoriteRepository(dbConn)
	shoppingListRepo := store.NewShoppingListRepository(dbConn)

	userService := services.NewUserService(userRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo)
	shoppingListService := services.NewShoppingListService(shoppingListRepo)

	catalogClient := catalog.NewClient(cfg.CatalogBaseURL)

	authHandler := handlers.NewAuthHandler(userService, cfg.JWTSecret, cfg.CookieSecure)
	recipeHandler := handlers.NewRecipeHandler(catalogClient)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	shoppingListHandler := handlers.NewShoppingListHandler(shoppingListService)

	requireAuth := handlers.RequireAuth(cfg.JWTSecret, cfg.CookieSecure)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", handlers.Healthz)

	router.Post("/register", authHandler.Register)
	router.Post("/login", authHandler.Login)
	router.Post("/logout", authHandler.Logout)
	router.Get("/recipes", recipeHandler.ListRecipes)
	router.Get("/recipes/{recipeID}", recipeHandler.GetRecipe)

	router.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Patch("/update_user", authHandler.UpdateUser)
		r.Patch("/reset_password", authHandler.ResetPassword)
		r.Delete("/delete_user", authHandler.DeleteUser)
		r.Post("/add_favorite", favoriteHandler.AddFavorite)
		r.Delete("/remove_favorite/{recipeID}", favoriteHandler.RemoveFavorite)
		r.Get("/favorite", favoriteHandler.ListFavorites)
		r.Post("/add_list", shoppingListHandler.AddToList)
		r.Get("/fetch_list", shoppingListHandler.FetchList)
		r.Delete("/delete_list", shoppingListHandler.ClearList)
		r.Delete("/delete_item", shoppingListHandler.RemoveItem)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	if s.db != nil {
		_ = s.db.Close()
	}
	return err
}
