package httpserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/logging"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/service"
)

const (
	adminCookieName   = "admin_token"
	cartSessionHeader = "X-Cart-Session"
)

// RequestLogger injects a per-request logger into the context and logs
// completion by status class.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)

			l := base.With(
				"method", c.Request().Method,
				"path", c.Path(),
				"url", c.Request().URL.Path,
				"remote_ip", c.RealIP(),
			)
			if rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}

			req := c.Request().WithContext(logging.IntoContext(c.Request().Context(), l))
			c.SetRequest(req)

			start := time.Now()
			err := next(c)
			dur := time.Since(start)
			status := c.Response().Status

			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
				status = c.Response().Status
			}

			switch {
			case err != nil || status >= 500:
				l.Error("request completed", "status", status, "duration_ms", dur.Milliseconds(), "error", errStr(err))
			case status >= 400:
				l.Warn("request completed", "status", status, "duration_ms", dur.Milliseconds())
			default:
				l.Info("request completed", "status", status, "duration_ms", dur.Milliseconds(), "bytes", c.Response().Size)
			}
			return nil
		}
	}
}

func errStr(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%v", err)
}

type AuthMiddleware struct {
	Auth *service.AuthService
}

func tokenFromRequest(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if cookie, err := c.Cookie(adminCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireAdmin authenticates the request and stores the admin record in the
// echo context.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := tokenFromRequest(c)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing auth token")
		}

		admin, err := m.Auth.Authenticate(c.Request().Context(), token)
		if err != nil {
			return httpError(err)
		}
		c.Set("admin", admin)
		return next(c)
	}
}

// RequireSuperAdmin gates routes to the superadmin role. Must run after
// RequireAdmin.
func (m *AuthMiddleware) RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		admin, ok := c.Get("admin").(*models.Admin)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing auth token")
		}
		if admin.Role != models.RoleSuperAdmin {
			return echo.NewHTTPError(http.StatusForbidden, service.ErrForbidden.Error())
		}
		return next(c)
	}
}

// CartSession resolves the opaque cart session id, generating one for new
// visitors and echoing it back in the response header.
func CartSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sid := c.Request().Header.Get(cartSessionHeader)
		if sid == "" {
			sid = uuid.NewString()
		}
		c.Response().Header().Set(cartSessionHeader, sid)
		c.Set("cartSession", sid)
		return next(c)
	}
}

func cartSessionID(c echo.Context) string {
	sid, _ := c.Get("cartSession").(string)
	return sid
}
