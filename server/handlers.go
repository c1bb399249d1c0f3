package server

import (
	"encoding/json"
	"net/http"
	"time"

	"cinegate/cache"
	"cinegate/config"
	"cinegate/core/auth"
	"cinegate/core/tmdb"
	"cinegate/logger"
	"cinegate/repository"
)

// APIHandler handles all API requests. Every dependency is injected at
// startup; handlers hold no package-level state.
type APIHandler struct {
	userRepo  repository.UserRepository
	movieRepo repository.MovieRepository
	catalog   *tmdb.Client
	tokens    *auth.TokenManager
	listCache *cache.CatalogCache
	cfg       *config.Config
	startedAt time.Time
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	userRepo repository.UserRepository,
	movieRepo repository.MovieRepository,
	catalog *tmdb.Client,
	tokens *auth.TokenManager,
	listCache *cache.CatalogCache,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		userRepo:  userRepo,
		movieRepo: movieRepo,
		catalog:   catalog,
		tokens:    tokens,
		listCache: listCache,
		cfg:       cfg,
		startedAt: time.Now(),
	}
}

// respondJSON writes a JSON body with the given status code.
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("[respond] failed to encode response", logger.ErrorField(err))
	}
}

// respondError writes the uniform error envelope. Only generic messages go
// out this way; anything sensitive is logged server-side before calling it.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HealthHandler reports service liveness.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "OK",
		"service":   "cinegate",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Seconds(),
	})
}
