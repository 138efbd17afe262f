package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hayuasamad2-code/student-fee-system/models"
)

// RequireRole(models.RoleAdmin) → ผ่านเฉพาะ role ที่ระบุ. 403 is distinct from
// the middleware's 401: the caller is known, just not allowed.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	need := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		need[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(models.Role) // set ไว้โดย RequireAuth
			if _, ok := need[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}
