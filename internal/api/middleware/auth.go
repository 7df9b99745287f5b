package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/workpulse/attendance-system/internal/core/ports"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUserID     = "userId"
	CtxEmail      = "email"
	CtxRole       = "role"
	CtxEmployeeID = "employeeId"
	CtxDepartment = "department"
	CtxToken      = "token"
)

// Auth validates the JWT, rejects revoked tokens, and injects claims into
// context. tokens may be nil, in which case revocation is not checked.
func Auth(jwtSecret string, tokens ports.TokenStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if tokens != nil {
				revoked, err := tokens.IsRevoked(c.Request().Context(), parts[1])
				if err != nil {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "token store unavailable")
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			if id, ok := claims["id"].(float64); ok {
				c.Set(CtxUserID, int64(id))
			}
			c.Set(CtxEmail, claims["email"])
			c.Set(CtxRole, claims["role"])
			c.Set(CtxEmployeeID, claims["employeeId"])
			c.Set(CtxDepartment, claims["department"])
			c.Set(CtxToken, parts[1])

			return next(c)
		}
	}
}
