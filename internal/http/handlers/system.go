package handlers

import (
	"net/http"

	"busfinder/internal/config"
	intdb "busfinder/internal/db"
	"busfinder/internal/domain/models"

	"github.com/gin-gonic/gin"
)

var requiredColumns = []string{
	models.ColState,
	models.ColFromPlace,
	models.ColToPlace,
	models.ColBusName,
	models.ColBusType,
	models.ColDepartureTime,
	models.ColReachingTime,
	models.ColTicketPrice,
	models.ColRating,
}

// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "busfinder is running"})
}

// GET /api/db-check
func (h *Handler) DBCheck(c *gin.Context) {
	ctx := c.Request.Context()
	if err := config.PingDB(ctx, h.DB); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unreachable", "database unreachable: "+err.Error(), nil)
		return
	}

	missing, err := intdb.MissingColumns(ctx, h.DB, models.BusTable, requiredColumns)
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "schema_probe_failed", "schema probe failed: "+err.Error(), nil)
		return
	}
	if len(missing) > 0 {
		respondError(c, http.StatusInternalServerError, "schema_mismatch", "table "+models.BusTable+" is missing columns", gin.H{"missing": missing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "table": models.BusTable})
}

// GET /api/routes
func (h *Handler) Routes(c *gin.Context) {
	h.routerMu.RLock()
	r := h.router
	h.routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
