package handlers

import (
	"database/sql"
	"sync"

	"busfinder/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler carries the per-process dependencies of every route. The database
// handle is owned by main and only borrowed here.
type Handler struct {
	DB      *sql.DB
	Filters *services.FilterService
	Search  services.SearchService
	Export  services.ExportService
	Auth    services.AuthService

	routerMu sync.RWMutex
	router   *gin.Engine
}

// SetRouter stores the active gin engine for /api/routes.
func (h *Handler) SetRouter(r *gin.Engine) {
	h.routerMu.Lock()
	defer h.routerMu.Unlock()
	h.router = r
}
