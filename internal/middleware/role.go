package middleware

import (
	"fleet-manager/pkg/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		userRole := role.(string)

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware("administrator")
}

// FleetOperators are the roles allowed to change fleet state.
func FleetOperators() gin.HandlerFunc {
	return RoleMiddleware("administrator", "manager")
}

// MaintenanceStaff are the roles allowed to edit maintenance history and
// truck statuses.
func MaintenanceStaff() gin.HandlerFunc {
	return RoleMiddleware("administrator", "manager", "mechanic")
}
