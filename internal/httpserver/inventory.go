package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/repo"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/transport"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/util"
)

type InventoryHandler struct {
	Repo             *repo.GormRepo
	DefaultThreshold int
}

// Levels returns the full stock snapshot across all four categories.
func (h *InventoryHandler) Levels(c echo.Context) error {
	levels, err := h.Repo.StockLevels(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, levels)
}

func (h *InventoryHandler) LowStock(c echo.Context) error {
	threshold := util.ParseIntDefault(c.QueryParam("threshold"), h.DefaultThreshold)
	if threshold < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "threshold must not be negative")
	}
	levels, err := h.Repo.LowStock(c.Request().Context(), threshold)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, echo.Map{"threshold": threshold, "items": levels})
}

// AdjustStock sets an absolute quantity for one item.
func (h *InventoryHandler) AdjustStock(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req transport.AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Quantity < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must not be negative")
	}

	category := c.Param("category")
	if err := h.Repo.SetQuantity(c.Request().Context(), category, id, req.Quantity); err != nil {
		return httpError(err)
	}
	return transport.OK(c, echo.Map{"category": category, "id": id, "quantity": req.Quantity})
}
