package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"jelantahgo/internal/domain"
)

const actorKey = "actor"

// RequireAuth parses the Bearer token and stores the actor identity on
// the gin context. Requests without a valid token are rejected here so
// handlers can assume GetActor always succeeds.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak ditemukan"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid atau kadaluarsa"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}
		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}
		role, _ := claims["role"].(string)

		c.Set(actorKey, domain.RequestContext{
			UserID: int64(userID),
			Role:   role,
		})
		c.Next()
	}
}

// RequireRoles gates a route to the named roles. Must run after
// RequireAuth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToUpper(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: identitas tidak ditemukan"})
			return
		}
		if _, ok := allowed[strings.ToUpper(actor.Role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: role tidak diizinkan"})
			return
		}
		c.Next()
	}
}

// GetActor returns the authenticated identity set by RequireAuth.
func GetActor(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	actor, ok := v.(domain.RequestContext)
	return actor, ok
}
