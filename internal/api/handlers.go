package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/netlens/backend/internal/analytics"
	"github.com/netlens/backend/internal/store"
)

// Handler handles API requests.
type Handler struct {
	engine *analytics.Engine
	store  store.Store
	logger *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(engine *analytics.Engine, st store.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{engine: engine, store: st, logger: logger}
}

// pagination reads page/limit query parameters, applying the shared
// defaults. Non-integer values are rejected here; range checks happen in
// the engine before any view computation runs.
func pagination(c echo.Context) (page, limit int, err error) {
	page, limit = analytics.DefaultPage, analytics.DefaultLimit
	if raw := c.QueryParam("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, NewBadRequestError("page must be an integer", err)
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, NewBadRequestError("limit must be an integer", err)
		}
	}
	return page, limit, nil
}

// HandleHealth returns server health status and the current record count.
func (h *Handler) HandleHealth(c echo.Context) error {
	count, err := h.store.Count(c.Request().Context())
	if err != nil {
		return NewInternalError("log store unavailable", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":     "ok",
		"total_logs": count,
	})
}

// HandleAnomalies serves the anomaly detection view.
func (h *Handler) HandleAnomalies(c echo.Context) error {
	page, limit, err := pagination(c)
	if err != nil {
		return err
	}
	report, err := h.engine.Anomalies(c.Request().Context(), page, limit)
	if err != nil {
		h.logger.Error("anomaly view failed", zap.Error(err))
		return FromViewError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// HandleClusterOverview serves the per-cluster summary view.
func (h *Handler) HandleClusterOverview(c echo.Context) error {
	overview, err := h.engine.ClusterOverview(c.Request().Context())
	if err != nil {
		h.logger.Error("cluster overview failed", zap.Error(err))
		return FromViewError(err)
	}
	return c.JSON(http.StatusOK, overview)
}

// HandleClusterDetail serves the paginated records of one cluster.
func (h *Handler) HandleClusterDetail(c echo.Context) error {
	clusterID, err := strconv.Atoi(c.Param("clusterId"))
	if err != nil {
		return NewBadRequestError("cluster id must be an integer", err)
	}
	page, limit, err := pagination(c)
	if err != nil {
		return err
	}
	detail, err := h.engine.ClusterDetail(c.Request().Context(), clusterID, page, limit)
	if err != nil {
		h.logger.Error("cluster detail failed", zap.Int("cluster", clusterID), zap.Error(err))
		return FromViewError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

// HandleHotspots serves the traffic hotspot view.
func (h *Handler) HandleHotspots(c echo.Context) error {
	report, err := h.engine.Hotspots(c.Request().Context())
	if err != nil {
		h.logger.Error("hotspot view failed", zap.Error(err))
		return FromViewError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// HandleProtocols serves the protocol mismatch view.
func (h *Handler) HandleProtocols(c echo.Context) error {
	page, limit, err := pagination(c)
	if err != nil {
		return err
	}
	report, err := h.engine.Protocols(c.Request().Context(), page, limit)
	if err != nil {
		h.logger.Error("protocol view failed", zap.Error(err))
		return FromViewError(err)
	}
	return c.JSON(http.StatusOK, report)
}
