package middleware

import (
	"context"
	"net/http"
	"strings"

	"realtalk/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdentityVerifier turns a bearer token into a user id.
type IdentityVerifier interface {
	VerifyUID(ctx context.Context, token string) (string, error)
}

// FirebaseVerifier accepts Firebase Auth ID tokens.
type FirebaseVerifier struct {
	Client *auth.Client
}

func (v FirebaseVerifier) VerifyUID(ctx context.Context, token string) (string, error) {
	t, err := v.Client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}
	return t.UID, nil
}

// SessionVerifier accepts admin session tokens issued by POST /api/admin/login.
type SessionVerifier struct {
	Signer *utils.TokenSigner
}

func (v SessionVerifier) VerifyUID(ctx context.Context, token string) (string, error) {
	return v.Signer.ExtractSubject(token, utils.ScopeAdmin)
}

// AdminAuthMiddleware admits a request only when one of the verifiers maps
// its bearer token to adminUID. An empty adminUID admits nobody.
func AdminAuthMiddleware(adminUID string, verifiers ...IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		for _, v := range verifiers {
			uid, err := v.VerifyUID(c.Request.Context(), tokenString)
			if err != nil {
				continue
			}
			if adminUID == "" || uid != adminUID {
				zap.L().Warn("non-admin identity rejected", zap.String("uid", uid))
				break
			}
			c.Set("adminUID", uid)
			c.Next()
			return
		}

		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Administrator sign-in required")
	}
}
