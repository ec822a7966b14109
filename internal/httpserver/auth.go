package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/models"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/service"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
}

// Setup bootstraps the first superadmin account. Open until an admin exists,
// then permanently answers 409.
func (h *AuthHandler) Setup(c echo.Context) error {
	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	admin, err := h.Svc.Setup(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return transport.Created(c, admin)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	admin, err := h.Svc.Register(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return transport.Created(c, admin)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	token, admin, err := h.Svc.Login(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     adminCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return transport.OK(c, echo.Map{"token": token, "admin": admin})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     adminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return transport.OK(c, echo.Map{"logged_out": true})
}

// Me returns the authenticated admin. RequireAdmin has already rejected
// invalid tokens and inactive accounts.
func (h *AuthHandler) Me(c echo.Context) error {
	admin, ok := c.Get("admin").(*models.Admin)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing auth token")
	}
	return transport.OK(c, admin)
}
