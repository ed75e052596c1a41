package handlers

import (
	"net/http"

	"busfinder/internal/http/middleware"
	"busfinder/internal/utils"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	token, exp, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "rejected login for "+req.Username)
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": exp,
	})
}

// POST /api/admin/options/refresh
func (h *Handler) RefreshOptions(c *gin.Context) {
	opts, err := h.Filters.Refresh(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "admin", "refresh_options", "by "+c.GetString("userSubject"))
	c.JSON(http.StatusOK, gin.H{"message": "options reloaded", "options": opts})
}
