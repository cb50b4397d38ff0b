package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/auth"
	"resume-optimizer/internal/shared/server/respond"
)

const userIDKey = "userId"

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(token, wantType string) (auth.Claims, error)
}

// ActiveUserChecker confirms the token subject still exists and may sign in.
type ActiveUserChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// Auth requires a valid bearer access token and stores the user ID in context.
// When users is non-nil the subject must also resolve to an active account.
func Auth(verifier TokenVerifier, users ActiveUserChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, "Not authenticated")
			return
		}

		claims, err := verifier.Verify(token, auth.TokenTypeAccess)
		if err != nil {
			unauthorized(c, "Could not validate credentials")
			return
		}

		if users != nil {
			active, err := users.IsActive(c.Request.Context(), claims.UserID())
			if err != nil {
				respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to load user", nil)
				return
			}
			if !active {
				unauthorized(c, "Could not validate credentials")
				return
			}
		}

		c.Set(userIDKey, claims.UserID())
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[len("Bearer "):])
	return token, token != ""
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, message, nil)
}
