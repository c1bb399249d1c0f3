package server

import (
	"net/http"

	"cinegate/core/tmdb"
	"cinegate/logger"

	"github.com/google/uuid"
)

const airingTodayCacheKey = "tv_airing_today"

// AiringTodayHandler proxies the TV airing-today list. Pure transform over
// the upstream response; nothing is persisted.
func (h *APIHandler) AiringTodayHandler(w http.ResponseWriter, r *http.Request) {
	var shows []tmdb.AiringTodayShow

	hit, err := h.listCache.Get(r.Context(), airingTodayCacheKey, &shows)
	if err != nil {
		logger.Warn("[AiringToday] cache read failed", logger.ErrorField(err))
	}

	if !hit {
		shows, err = h.catalog.AiringToday(r.Context())
		if err != nil {
			logger.Error("[AiringToday] upstream fetch failed", logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Failed to fetch TV series data")
			return
		}
		if err := h.listCache.Set(r.Context(), airingTodayCacheKey, shows); err != nil {
			logger.Warn("[AiringToday] cache write failed", logger.ErrorField(err))
		}
	}

	respondJSON(w, http.StatusOK, catalogEnvelope{
		RequestID: uuid.New().String(),
		Data:      shows,
	})
}
