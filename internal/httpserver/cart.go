package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/service"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/transport"
)

type CartHandler struct {
	Svc *service.CartService
}

func (h *CartHandler) Get(c echo.Context) error {
	view, err := h.Svc.Get(c.Request().Context(), cartSessionID(c))
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, view)
}

func (h *CartHandler) AddLine(c echo.Context) error {
	var req transport.CartLineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	view, err := h.Svc.AddLine(c.Request().Context(), cartSessionID(c), req)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, view)
}

func (h *CartHandler) UpdateLine(c echo.Context) error {
	var req transport.UpdateCartLineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	view, err := h.Svc.UpdateLine(c.Request().Context(), cartSessionID(c), c.Param("lineID"), req.Quantity)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, view)
}

func (h *CartHandler) RemoveLine(c echo.Context) error {
	view, err := h.Svc.RemoveLine(c.Request().Context(), cartSessionID(c), c.Param("lineID"))
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, view)
}

func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.Svc.Clear(c.Request().Context(), cartSessionID(c)); err != nil {
		return httpError(err)
	}
	return transport.OK(c, echo.Map{"cleared": true})
}
