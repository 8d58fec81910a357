// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all API routes with the Echo instance.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	apiGroup := e.Group("/api")

	apiGroup.GET("/health", h.HandleHealth)

	apiGroup.GET("/anomalies", h.HandleAnomalies)

	clusterGroup := apiGroup.Group("/clusters")
	clusterGroup.GET("/overview", h.HandleClusterOverview)
	clusterGroup.GET("/:clusterId", h.HandleClusterDetail)

	apiGroup.GET("/hotspots", h.HandleHotspots)
	apiGroup.GET("/protocols", h.HandleProtocols)
}
