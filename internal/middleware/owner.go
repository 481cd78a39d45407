package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyOwnerID is the gin context key for the authenticated owner id.
const ContextKeyOwnerID = "owner_id"

// OwnerContext resolves the owner identity forwarded by the upstream
// gateway. Authentication itself happens there; this service trusts the
// X-Owner-ID header it receives.
func OwnerContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-Owner-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "owner context required"},
			})
			return
		}
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid owner id"},
			})
			return
		}
		c.Set(ContextKeyOwnerID, ownerID)
		c.Next()
	}
}

// GetOwnerID returns the owner id set by OwnerContext.
func GetOwnerID(c *gin.Context) (uuid.UUID, error) {
	v, exists := c.Get(ContextKeyOwnerID)
	if !exists {
		return uuid.Nil, errors.New("owner id not set in context")
	}
	ownerID, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("owner id has unexpected type")
	}
	return ownerID, nil
}
