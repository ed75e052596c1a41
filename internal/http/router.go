package api

import (
	"embed"
	"html/template"
	"log/slog"
	stdhttp "net/http"

	intconfig "busfinder/internal/config"
	"busfinder/internal/http/handlers"
	"busfinder/internal/http/middleware"
	"busfinder/internal/services"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

func loadTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))
}

func NewRouter(env intconfig.Env, h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		slog.Warn("failed to set trusted proxies", "error", err)
	}
	r.SetHTMLTemplate(loadTemplates())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	searchLimit := middleware.RateLimit(env.SearchRatePerMinute, env.SearchRateBurst)

	// Pages
	r.GET("/", h.HomePage)
	r.GET("/buses/filter", h.FilterPage)
	r.POST("/buses/filter", searchLimit, h.SubmitFilterPage)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Buses
		buses := api.Group("/buses")
		buses.GET("/options", h.GetOptions)
		buses.POST("/search", searchLimit, h.SearchBuses)
		buses.GET("/search/export", searchLimit, h.ExportBuses)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)

		// Admin
		admin := api.Group("/admin", middleware.RequireAuth(h.Auth), middleware.RequireRoles(services.RoleAdmin))
		admin.POST("/options/refresh", h.RefreshOptions)
	}

	h.SetRouter(r)
	return r
}
