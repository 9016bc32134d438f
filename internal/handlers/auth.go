package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"dating-admin-console/internal/client"
	"dating-admin-console/internal/config"
	"dating-admin-console/internal/middleware"
	"dating-admin-console/internal/redis"
)

type AuthHandler struct {
	api      *client.Client
	sessions *redis.Client
	cfg      *config.Config
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(api *client.Client, sessions *redis.Client, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		api:      api,
		sessions: sessions,
		cfg:      cfg,
	}
}

// Login verifies credentials against the remote backend, then issues a
// console token and records the session so logout can revoke it.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.api.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(apiStatus(err), gin.H{"error": err.Error()})
		return
	}

	username := admin.Username
	if username == "" {
		username = req.Username
	}

	jti := uuid.NewString()
	claims := jwt.MapClaims{
		"username": username,
		"jti":      jti,
		"exp":      time.Now().Add(h.cfg.JWTExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session token"})
		return
	}

	if err := h.sessions.Set(c.Request.Context(), middleware.SessionKey(jti), username, h.cfg.JWTExpiry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed, "admin": admin})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if jti, ok := c.Get("session_id"); ok {
		if id, ok := jti.(string); ok && id != "" {
			h.sessions.Del(c.Request.Context(), middleware.SessionKey(id))
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
