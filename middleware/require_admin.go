package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/skillplus-backend/apperror"
	"github.com/vnkhanh/skillplus-backend/models"
	"github.com/vnkhanh/skillplus-backend/utils"
)

// RequireRoles cho phép chỉ định nhiều vai trò được quyền truy cập.
// Absent sessions are rejected the same way as wrong roles.
func RequireRoles(allowedRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			utils.Error(c, apperror.Authorization("You must be signed in as an administrator"))
			return
		}

		for _, allowed := range allowedRoles {
			if session.Role == allowed {
				c.Next()
				return
			}
		}

		utils.Error(c, apperror.Authorization("You do not have permission to access this resource"))
	}
}
