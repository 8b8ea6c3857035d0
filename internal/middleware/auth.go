package middleware

import (
	"net/http"
	"strings"

	"collabhub/internal/metrics"
	"collabhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserID  = "userID"
	ctxIsAdmin = "isAdmin"
	ctxClaims  = "claims"
)

// RequireAuth rejects requests without a valid bearer token. The 401 body
// echoes the requested path so the client can return to it after login.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, auth)
		if !ok {
			metrics.AuthFailures.Inc()
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
				"next":  c.Request.URL.Path,
			})
			c.Abort()
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth resolves the caller's identity when a token is present but
// lets anonymous requests through. Public reads use it to compute
// ownership flags.
func OptionalAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := authenticate(c, auth); ok {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// RequireAdmin layers the admin claim on top of authentication. Admin
// handlers re-check the flag themselves as well.
func RequireAdmin(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, auth)
		if !ok {
			metrics.AuthFailures.Inc()
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
				"next":  c.Request.URL.Path,
			})
			c.Abort()
			return
		}
		if !claims.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

func authenticate(c *gin.Context, auth service.AuthService) (*service.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := auth.ParseToken(parts[1])
	if err != nil {
		return nil, false
	}

	revoked, err := auth.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil || revoked {
		return nil, false
	}

	return claims, true
}

func setIdentity(c *gin.Context, claims *service.Claims) {
	if id, err := uuid.Parse(claims.UserID); err == nil {
		c.Set(ctxUserID, id)
	}
	c.Set(ctxIsAdmin, claims.IsAdmin)
	c.Set(ctxClaims, claims)
}

// CurrentUserID returns the authenticated caller's id, if any.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ctxUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

func IsAdmin(c *gin.Context) bool {
	value, exists := c.Get(ctxIsAdmin)
	if !exists {
		return false
	}
	admin, _ := value.(bool)
	return admin
}

func CurrentClaims(c *gin.Context) (*service.Claims, bool) {
	value, exists := c.Get(ctxClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*service.Claims)
	return claims, ok
}
