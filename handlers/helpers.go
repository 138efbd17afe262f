package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hayuasamad2-code/student-fee-system/models"
)

// storeTimeout bounds every store call; a slow store fails the request
// instead of hanging it.
const storeTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), storeTimeout)
}

// แปลง :id -> uint; แปลงไม่ได้ = 400
func idParam(c echo.Context) (uint, error) {
	n, err := strconv.Atoi(c.Param("id"))
	if err != nil || n <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	return uint(n), nil
}

// currentUser อ่าน claims ที่ middleware แนบไว้
func currentUser(c echo.Context) (uint, models.Role) {
	id, _ := c.Get("user_id").(uint)
	role, _ := c.Get("role").(models.Role)
	return id, role
}

// storeErr logs the real error server-side and returns a generic 500; raw
// driver text must not reach the client.
func storeErr(c echo.Context, err error) error {
	c.Logger().Errorf("store error: %v", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}
