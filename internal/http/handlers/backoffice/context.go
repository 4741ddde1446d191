package backoffice

import (
	"github.com/gin-gonic/gin"

	handlershared "github.com/salesdesk-next/internal/http/handlers/shared"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "admin_id", "error.admin_id_invalid", "error.admin_id_type_invalid")
}

func getAdminRole(c *gin.Context) string {
	value, ok := c.Get("admin_role")
	if !ok {
		return ""
	}
	if role, ok := value.(string); ok {
		return role
	}
	return ""
}

func getAdminUsername(c *gin.Context) string {
	value, ok := c.Get("username")
	if !ok {
		return ""
	}
	if username, ok := value.(string); ok {
		return username
	}
	return ""
}
