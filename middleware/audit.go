package middleware

import (
	"metanoia_app_go/services"

	"github.com/labstack/echo/v4"
)

const ContextKeyAuditContext = "audit_context"

// AuditContext is middleware that extracts user info for audit logging
func AuditContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actx := services.AuditContext{
				IPAddress: c.RealIP(),
				UserAgent: c.Request().UserAgent(),
			}

			if user := GetCurrentUser(c); user != nil {
				actx.UserID = user.ID
				actx.UserName = user.Name
			}

			c.Set(ContextKeyAuditContext, actx)
			return next(c)
		}
	}
}

// GetAuditContext retrieves the audit context from the request
func GetAuditContext(c echo.Context) services.AuditContext {
	if actx, ok := c.Get(ContextKeyAuditContext).(services.AuditContext); ok {
		return actx
	}
	return services.AuditContext{}
}
