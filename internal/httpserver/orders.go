package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/service"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/transport"
)

type OrderHandler struct {
	Svc *service.OrderService
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	order, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return transport.Created(c, order)
}

func (h *OrderHandler) List(c echo.Context) error {
	page, offset, limit := pageParams(c)
	total, orders, err := h.Svc.List(c.Request().Context(), c.QueryParam("status"), offset, limit)
	if err != nil {
		return httpError(err)
	}
	return transport.List(c, orders, page, limit, total)
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	order, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	order, err := h.Svc.Transition(c.Request().Context(), id, req.Status)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, order)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return transport.OK(c, echo.Map{"deleted": id})
}

// RecalculateProfit reprices an order's cost figures from the current
// catalog. Mainly useful after component costs were corrected.
func (h *OrderHandler) RecalculateProfit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	order, err := h.Svc.RecalculateProfit(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, order)
}
