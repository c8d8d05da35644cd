package handlers

import (
	"net/http"
	"time"

	"realtalk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues administrator session tokens for password sign-in.
// Firebase ID tokens are accepted directly by the admin guard and need no
// exchange.
type AuthHandler struct {
	Signer       *utils.TokenSigner
	AdminUID     string
	PasswordHash string
	SessionTTL   time.Duration
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	if h.AdminUID == "" || h.PasswordHash == "" {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Password sign-in is not configured")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(body.Password)); err != nil {
		utils.GetLogger().Warn("admin login failed", zap.String("ip", c.ClientIP()))
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Incorrect password")
		return
	}

	token, err := h.Signer.GenerateToken(h.AdminUID, utils.ScopeAdmin, h.SessionTTL)
	if err != nil {
		utils.GetLogger().Error("failed to sign admin token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Could not sign in. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": time.Now().Add(h.SessionTTL).UTC(),
	})
}
