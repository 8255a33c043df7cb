package middleware

import (
	"net/http"

	"mindhaven/internal/user/model"

	"github.com/gin-gonic/gin"
)

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSession(c) == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleMiddleware sends a logged-in user with the wrong role to their own
// dashboard instead of the one they asked for.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		record := GetSession(c)
		if record == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		for _, allowedRole := range allowedRoles {
			if record.Role == allowedRole {
				c.Next()
				return
			}
		}

		c.Redirect(http.StatusSeeOther, model.DashboardPath(record.Role))
		c.Abort()
	}
}

// PatientArea admits any logged-in user: the patient dashboard is the
// default landing area, including for unrecognized roles.
func PatientArea() gin.HandlerFunc {
	return RequireLogin()
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}

func TherapistOnly() gin.HandlerFunc {
	return RoleMiddleware(model.RoleTherapist)
}
