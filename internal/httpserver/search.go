package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/search"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/transport"
)

type SearchHandler struct {
	Client *search.Client
}

func (h *SearchHandler) Search(c echo.Context) error {
	if h.Client == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	page, offset, limit := pageParams(c)
	total, docs, err := h.Client.Query(c.Request().Context(), q, offset, limit)
	if err != nil {
		return httpError(err)
	}
	return transport.List(c, docs, page, limit, total)
}
