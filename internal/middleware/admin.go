package middleware

import (
	"eventreg/internal/domain"

	"github.com/gin-gonic/gin"
)

// AdminRequired checks that the authenticated caller has the ADMIN role.
func AdminRequired() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
