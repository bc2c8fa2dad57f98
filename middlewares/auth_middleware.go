package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/utils"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID      = "userID"
	CtxEmail       = "email"
	CtxAccessToken = "accessToken"
	CtxAuthUser    = "authUser"
)

// SessionCookie holds the access token for browser sessions.
const SessionCookie = "access_token"

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if tok, err := c.Cookie(SessionCookie); err == nil {
		return tok
	}
	return ""
}

func authenticate(c *gin.Context, secret []byte) bool {
	tok := bearerToken(c)
	if tok == "" {
		return false
	}
	claims, err := utils.ParseJWT(secret, tok)
	if err != nil {
		return false
	}
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxEmail, claims.Email)
	c.Set(CtxAccessToken, tok)
	c.Set(CtxAuthUser, models.AuthUser{ID: claims.UserID, Email: claims.Email, Metadata: claims.Metadata})
	return true
}

// AuthMiddleware guards the JSON API: a missing or invalid token is a 401.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured: JWT_SECRET not set"})
			return
		}
		if !authenticate(c, secret) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}

// ViewAuthMiddleware guards the page routes: unauthenticated visitors go to /login.
func ViewAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 || !authenticate(c, secret) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
