package handlers

import (
	"net/http"

	intconfig "agrisolve/internal/config"
	intdb "agrisolve/internal/db"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "agrisolve backend running"})
}

func (h *Handler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database not connected", nil)
		return
	}
	if err := intconfig.PingDB(c.Request.Context(), h.DB); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database ping failed: "+err.Error(), nil)
		return
	}
	var count int
	if err := h.DB.QueryRowContext(c.Request.Context(), "SELECT COUNT(*) FROM listings").Scan(&count); err != nil {
		respondError(c, http.StatusInternalServerError, "db_query_failed", "database query failed: "+err.Error(), nil)
		return
	}
	snap := h.Snapshot.Snapshot()
	resp := gin.H{
		"message":             "database connection OK",
		"listings_in_db":      count,
		"snapshot_loaded":     snap.Loaded,
		"snapshot_listings":   len(snap.Records),
		"snapshot_fetched_at": snap.FetchedAt,
	}
	if missing := intdb.MissingTables(c.Request.Context(), h.DB); len(missing) > 0 {
		resp["missing_tables"] = missing
	}
	if snap.Err != nil {
		resp["snapshot_error"] = snap.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Routes(c *gin.Context) {
	if h.engine == nil {
		respondError(c, http.StatusServiceUnavailable, "router_not_ready", "router not ready", nil)
		return
	}

	routes := h.engine.Routes()
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
