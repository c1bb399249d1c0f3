package server

import (
	"context"
	"net/http"
	"time"

	"cinegate/core/tmdb"
	"cinegate/logger"
	"cinegate/model"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const nowPlayingCacheKey = "movie_now_playing"

// catalogEnvelope wraps reshaped upstream data with a per-call correlation
// id. The id is freshly generated and never persisted.
type catalogEnvelope struct {
	RequestID string      `json:"requestId"`
	Data      interface{} `json:"data"`
}

// MovieDetailHandler proxies one movie detail from the upstream catalog,
// reshapes it, and records the fetch in the tracking store.
func (h *APIHandler) MovieDetailHandler(w http.ResponseWriter, r *http.Request) {
	movieID := mux.Vars(r)["id"]

	detail, err := h.catalog.MovieDetail(r.Context(), movieID)
	if err != nil {
		logger.Error("[MovieDetail] upstream fetch failed",
			logger.String("movieID", movieID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch movie data")
		return
	}

	// Tracking is best effort and must not delay or fail the response. The
	// upsert itself is a single atomic statement, so concurrent fetches for
	// the same id never lose an increment.
	go h.trackMovieFetch(detail)

	respondJSON(w, http.StatusOK, catalogEnvelope{
		RequestID: uuid.New().String(),
		Data:      detail,
	})
}

func (h *APIHandler) trackMovieFetch(detail *tmdb.MovieDetail) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	movie := &model.Movie{
		ID:      detail.ID,
		Title:   detail.Title,
		Budget:  detail.Budget,
		Revenue: detail.Revenue,
	}

	if err := h.movieRepo.UpsertOnFetch(ctx, movie); err != nil {
		// Swallowed on purpose; the read path stays available even when the
		// write path degrades.
		logger.Error("[MovieDetail] failed to record fetch",
			logger.Int64("movieID", detail.ID), logger.ErrorField(err))
	}
}

// NowPlayingHandler proxies the now-playing list, serving from the short-TTL
// cache when possible.
func (h *APIHandler) NowPlayingHandler(w http.ResponseWriter, r *http.Request) {
	var movies []tmdb.NowPlayingMovie

	hit, err := h.listCache.Get(r.Context(), nowPlayingCacheKey, &movies)
	if err != nil {
		logger.Warn("[NowPlaying] cache read failed", logger.ErrorField(err))
	}

	if !hit {
		movies, err = h.catalog.NowPlaying(r.Context())
		if err != nil {
			logger.Error("[NowPlaying] upstream fetch failed", logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Failed to fetch movie data")
			return
		}
		if err := h.listCache.Set(r.Context(), nowPlayingCacheKey, movies); err != nil {
			logger.Warn("[NowPlaying] cache write failed", logger.ErrorField(err))
		}
	}

	respondJSON(w, http.StatusOK, catalogEnvelope{
		RequestID: uuid.New().String(),
		Data:      movies,
	})
}

// ShowFavoriteMoviesHandler lists tracked movies ordered by favorite count.
func (h *APIHandler) ShowFavoriteMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movieRepo.ListByFavorite(r.Context())
	if err != nil {
		logger.Error("[ShowFavoriteMovies] failed to list movies", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, movies)
}
