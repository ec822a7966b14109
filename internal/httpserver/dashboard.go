package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/service"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/transport"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/util"
)

type DashboardHandler struct {
	Svc *service.DashboardService
}

func (h *DashboardHandler) Stats(c echo.Context) error {
	threshold := util.ParseIntDefault(c.QueryParam("threshold"), 0)
	stats, err := h.Svc.Stats(c.Request().Context(), threshold)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, stats)
}
