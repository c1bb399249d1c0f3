package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinegate/cache"
	"cinegate/config"
	"cinegate/core/auth"
	"cinegate/core/tmdb"
	"cinegate/db"
	"cinegate/logger"
	"cinegate/repository"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Connect to the database
	if err := db.ConnectDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.DB.Close()

	if err := db.ConnectGormDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database with GORM: %v", err)
	}
	defer db.CloseGormDB()

	// Initialize database schema
	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := db.MigrateMovies(); err != nil {
		log.Fatalf("Failed to migrate movies table: %v", err)
	}

	// Redis is optional; without it the list endpoints simply skip caching.
	var redisClient *redis.Client
	if err := db.ConnectRedis(cfg); err != nil {
		log.Printf("Redis unavailable, catalog list caching disabled: %v", err)
	} else {
		redisClient = db.RedisClient
		defer db.CloseRedis()
		log.Println("Successfully connected to Redis")
	}

	userRepo := repository.NewMySQLUserRepository(db.DB)
	movieRepo := repository.NewGormMovieRepository(db.GormDB)
	catalog := tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey)
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiresHours)*time.Hour)
	listCache := cache.NewCatalogCache(redisClient, 60*time.Second)

	apiHandler := NewAPIHandler(userRepo, movieRepo, catalog, tokens, listCache, cfg)

	router := mux.NewRouter()

	// CORS middleware
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Auth endpoints
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/profile", apiHandler.AuthMiddleware(apiHandler.ProfileHandler)).Methods(http.MethodGet)

	// Movie catalog proxy endpoints
	router.HandleFunc("/api/movie_core/detail/{id}", apiHandler.MovieDetailHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/movie_core/now_playing", apiHandler.NowPlayingHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/movie_core/showFavoriteMovies", apiHandler.ShowFavoriteMoviesHandler).Methods(http.MethodGet)

	// TV catalog proxy endpoints
	router.HandleFunc("/api/tv_series_core/airing_today", apiHandler.AiringTodayHandler).Methods(http.MethodGet)

	// Health check
	router.HandleFunc("/health", apiHandler.HealthHandler).Methods(http.MethodGet)

	server.Handler = router

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on :%s...", cfg.ServerPort)
		log.Println("Register via POST /api/auth/register")
		log.Println("Login via POST /api/auth/login")
		log.Println("Profile via GET /api/auth/profile (Bearer token)")
		log.Println("Movie detail via GET /api/movie_core/detail/{id}")
		log.Println("Now playing via GET /api/movie_core/now_playing")
		log.Println("Favorites via GET /api/movie_core/showFavoriteMovies")
		log.Println("Airing today via GET /api/tv_series_core/airing_today")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
