package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weiting-tw/room-booking-backend/internal/auth"
)

type AuthHandler struct {
	adminPasswordHash string
	jwtManager        *auth.JWTManager
}

func NewAuthHandler(adminPasswordHash string, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		adminPasswordHash: adminPasswordHash,
		jwtManager:        jwtManager,
	}
}

//
// POST /v1/admin/login
//

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if !auth.VerifyPassword(h.adminPasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
		return
	}

	token, err := h.jwtManager.GenerateAdminToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{AccessToken: token})
}
