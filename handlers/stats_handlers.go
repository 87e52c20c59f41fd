package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gatag/api/utils"
)

type StatsHandlers struct {
	Stats  RenderStats
	logger *zap.Logger
	now    func() time.Time
}

func NewStatsHandlers(stats RenderStats, logger *zap.Logger) *StatsHandlers {
	return &StatsHandlers{Stats: stats, logger: logger, now: time.Now}
}

func (h *StatsHandlers) RenderCounts(c *gin.Context) {
	interval := c.Query("interval")
	if !utils.IsValidInterval(interval) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "interval query parameter must be one of Minute, Hour, Day, Week, Month, Quarter, Year"})
		return
	}

	start, end, err := utils.ParseTimeRange(c.Query("start"), c.Query("end"), h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	results, err := h.Stats.GetRenderCountsOverTime(ctx, interval, start, end, c.Query("kind"))
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to retrieve render statistics")
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *StatsHandlers) TopAccounts(c *gin.Context) {
	start, end, err := utils.ParseTimeRange(c.Query("start"), c.Query("end"), h.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var limit uint64 = 10
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.ParseUint(limitParam, 10, 64)
		if err != nil || parsed == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter. Must be a positive integer."})
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dbTimeout)
	defer cancel()

	results, err := h.Stats.GetTopAccounts(ctx, start, end, limit)
	if err != nil {
		abortWithError(c, h.logger, err, "Failed to retrieve top accounts")
		return
	}
	c.JSON(http.StatusOK, results)
}
