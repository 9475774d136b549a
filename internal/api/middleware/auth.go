package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// RevocationChecker reports whether a token was invalidated by a logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Auth validates the bearer JWT, rejects logged-out tokens and injects the
// claims into the request context under user_id, dni, role and tipo_cliente.
func Auth(jwtSecret string, revoked RevocationChecker) echo.MiddlewareFunc {
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

			if revoked != nil {
				gone, err := revoked.IsRevoked(c.Request().Context(), parts[1])
				if err != nil {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "session check unavailable")
				}
				if gone {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			c.Set("user_id", claims["sub"])
			c.Set("dni", claims["dni"])
			c.Set("role", claims["tipo_usuario"])
			c.Set("tipo_cliente", claims["tipo_cliente"])
			c.Set("token", parts[1])

			return next(c)
		}
	}
}
