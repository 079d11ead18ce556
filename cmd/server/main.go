package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vedran77/devlink/internal/config"
	"github.com/vedran77/devlink/internal/database"
	mongorepo "github.com/vedran77/devlink/internal/repository/mongodb"
	"github.com/vedran77/devlink/internal/service"
	"github.com/vedran77/devlink/internal/transport/http/handlers"
	"github.com/vedran77/devlink/internal/transport/http/middleware"
	"github.com/vedran77/devlink/internal/transport/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "devlink").Logger()
	if cfg.Environment == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Database
	client, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("connecting to MongoDB")
	}
	db := client.Database(cfg.MongoDatabase)
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		logger.Fatal().Err(err).Msg("ensuring indexes")
	}
	logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")

	// Repositories
	userRepo := mongorepo.NewUserRepo(db)
	profileRepo := mongorepo.NewProfileRepo(db)
	postRepo := mongorepo.NewPostRepo(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	profileService := service.NewProfileService(profileRepo, userRepo)
	postService := service.NewPostService(postRepo, userRepo)

	// Live feed
	hub := ws.NewHub(logger)
	go hub.Run()
	postService.SetNotifier(ws.NewHubNotifier(hub, logger))

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	profileHandler := handlers.NewProfileHandler(profileService, logger)
	postHandler := handlers.NewPostHandler(postService, logger)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	// Public
	mux.HandleFunc("POST /api/users", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/profile", profileHandler.List)
	mux.HandleFunc("GET /api/profile/user/{id}", profileHandler.ByUserID)

	// Private - auth
	mux.Handle("GET /api/auth", auth(http.HandlerFunc(authHandler.Me)))

	// Private - posts
	mux.Handle("GET /api/posts", auth(http.HandlerFunc(postHandler.List)))
	mux.Handle("POST /api/posts", auth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("GET /api/posts/{id}", auth(http.HandlerFunc(postHandler.Get)))
	mux.Handle("DELETE /api/posts/{id}", auth(http.HandlerFunc(postHandler.Delete)))
	mux.Handle("PUT /api/posts/like/{id}", auth(http.HandlerFunc(postHandler.Like)))
	mux.Handle("PUT /api/posts/unlike/{id}", auth(http.HandlerFunc(postHandler.Unlike)))
	mux.Handle("PUT /api/posts/comment/{id}", auth(http.HandlerFunc(postHandler.AddComment)))
	mux.Handle("PUT /api/posts/comment/{id}/{comment_id}", auth(http.HandlerFunc(postHandler.RemoveComment)))

	// Private - profile
	mux.Handle("GET /api/profile/me", auth(http.HandlerFunc(profileHandler.Me)))
	mux.Handle("POST /api/profile", auth(http.HandlerFunc(profileHandler.Upsert)))
	mux.Handle("DELETE /api/profile", auth(http.HandlerFunc(profileHandler.Delete)))
	mux.Handle("PUT /api/profile/experience", auth(http.HandlerFunc(profileHandler.AddExperience)))
	mux.Handle("DELETE /api/profile/experience/{id}", auth(http.HandlerFunc(profileHandler.RemoveExperience)))

	// Live feed (token via query param)
	mux.Handle("GET /ws", ws.ServeWS(hub, cfg.JWTSecret))

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "x-auth-token"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsWrapper.Handler(mux),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return client.Disconnect(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
	logger.Info().Msg("server stopped")
}
