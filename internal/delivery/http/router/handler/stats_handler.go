package handler

import (
	"log/slog"
	"net/http"

	"rately/internal/delivery/http/response"
	"rately/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StatsHandler holds dependencies for the admin dashboard handlers.
type StatsHandler struct {
	statsUC   usecase.StatsUsecase
	accountUC usecase.AccountUsecase
	storeUC   usecase.StoreUsecase
	logger    *slog.Logger
}

// NewStatsHandler is the constructor for StatsHandler, injected by Fx.
func NewStatsHandler(statsUC usecase.StatsUsecase, accountUC usecase.AccountUsecase, storeUC usecase.StoreUsecase, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC:   statsUC,
		accountUC: accountUC,
		storeUC:   storeUC,
		logger:    logger,
	}
}

// Platform handles the platform-wide aggregation request.
func (h *StatsHandler) Platform(c echo.Context) error {
	stats, err := h.statsUC.PlatformStats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "Platform stats retrieved successfully")
}

// Dashboard handles the admin dashboard counters request, combining account
// and store directory aggregates.
func (h *StatsHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	accounts, err := h.accountUC.Stats(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	stores, err := h.storeUC.DirectoryStats(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"accounts": accounts,
		"stores":   stores,
	}, "Dashboard stats retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
