package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ivdepaste/ivdepaste-api/internal/middleware"
	"github.com/ivdepaste/ivdepaste-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// identityFromContext resolves the requester identity, nil when absent.
func identityFromContext(c *gin.Context) *string {
	return claimsFromContext(c).Identity()
}
