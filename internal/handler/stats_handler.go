package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"innoreg/internal/errors"
	"innoreg/internal/service"
)

// StatsHandler serves the home page aggregation.
type StatsHandler struct {
	stats service.StatsService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(stats service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Summary godoc
// @Summary Home page counters
// @Tags stats
// @Produce json
// @Success 200 {object} repository.Stats
// @Failure 500 {object} errors.ErrorResponse
// @Router /stats [get]
func (h *StatsHandler) Summary(c echo.Context) error {
	stats, err := h.stats.Summary(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}
