package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workpulse/attendance-system/internal/api/middleware"
)

// claimUserID extracts the numeric user ID injected by the Auth middleware.
// Its presence proves the middleware ran; a request without it never passed
// authentication.
func claimUserID(c echo.Context) (int64, error) {
	id, ok := c.Get(middleware.CtxUserID).(int64)
	if !ok || id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// claimEmployeeID returns the employee ID carried by the token.
func claimEmployeeID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxEmployeeID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "token missing employee identity")
	}
	return id, nil
}

// employeeIDParam resolves the employee scoping for read endpoints: the
// explicit employeeId query parameter wins, the token claim is the fallback.
func employeeIDParam(c echo.Context) (string, error) {
	if id := c.QueryParam("employeeId"); id != "" {
		return id, nil
	}
	return claimEmployeeID(c)
}
