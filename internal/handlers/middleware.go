package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userId"

	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

// identityMiddleware resolves the caller's identity from the access token,
// read from the accessToken cookie or an Authorization: Bearer header.
func (h *Handler) identityMiddleware(c *gin.Context) {
	token := accessTokenFrom(c)
	if token == "" {
		abortWithEnvelope(c, http.StatusUnauthorized, "missing access token")
		return
	}

	userID, err := h.services.ParseAccessToken(token)
	if err != nil {
		abortWithEnvelope(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

func accessTokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(accessCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// callerID returns the authenticated user ID set by identityMiddleware.
func callerID(c *gin.Context) (int, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
