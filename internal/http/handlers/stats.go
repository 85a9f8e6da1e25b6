package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/turkhealth/clinichub/internal/cache"
	"github.com/turkhealth/clinichub/internal/config"
	"github.com/turkhealth/clinichub/internal/repo/postgres"
)

type StatsReader interface {
	Summary(ctx context.Context) (postgres.StatsSummary, error)
}

type StatsHandler struct {
	repo  StatsReader
	cache cache.StatsCache
	log   *slog.Logger
}

func NewStatsHandler(repo StatsReader, statsCache cache.StatsCache, log *slog.Logger) *StatsHandler {
	return &StatsHandler{
		repo:  repo,
		cache: statsCache,
		log:   log,
	}
}

const statsCacheKey = "stats:summary"

// Get serves the landing-page counters. The aggregate touches two tables, so
// it is cached for a short TTL; users and tokens are never cached.
func (h *StatsHandler) Get(ctx *gin.Context) {
	rctx := ctx.Request.Context()

	if h.cache != nil {
		if raw, ok := h.cache.Get(rctx, statsCacheKey); ok {
			var s postgres.StatsSummary

			if err := json.Unmarshal(raw, &s); err == nil {
				RespondData(ctx, http.StatusOK, s)
				return
			}
			// corrupt entry, fall through and recompute
		}
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	s, err := h.repo.Summary(cctx)

	if err != nil {
		h.log.Error("stats aggregation failed", "err", err)
		RespondInternal(ctx, "Failed to fetch stats")
		return
	}

	if h.cache != nil {
		if raw, err := json.Marshal(s); err == nil {
			h.cache.Set(rctx, statsCacheKey, raw)
		}
	}

	RespondData(ctx, http.StatusOK, s)
}
