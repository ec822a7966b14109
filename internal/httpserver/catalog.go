package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/repo"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/service"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/transport"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/util"
)

type CatalogHandler struct {
	Svc *service.CatalogService
}

func pageParams(c echo.Context) (page, offset, limit int) {
	page = util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit = util.Calculate(page, size)
	return page, offset, limit
}

func componentFilter(c echo.Context) repo.ComponentFilter {
	return repo.ComponentFilter{ActiveOnly: c.QueryParam("active") == "true"}
}

func pathID(c echo.Context) (uint, error) {
	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return 0, httpError(err)
	}
	return id, nil
}

// ── Base colors ──────────────────────────────────────────────────────────

func (h *CatalogHandler) ListBaseColors(c echo.Context) error {
	page, offset, limit := pageParams(c)
	total, items, err := h.Svc.ListBaseColors(c.Request().Context(), componentFilter(c), offset, limit)
	if err != nil {
		return httpError(err)
	}
	return transport.List(c, items, page, limit, total)
}

func (h *CatalogHandler) GetBaseColor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.Svc.GetBaseColor(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, item)
}

func (h *CatalogHandler) CreateBaseColor(c echo.Context) error {
	var req transport.CreateComponentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	item, err := h.Svc.CreateBaseColor(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return transport.Created(c, item)
}

func (h *CatalogHandler) PatchBaseColor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req transport.PatchComponentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	item, err := h.Svc.PatchBaseColor(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, item)
}

func (h *CatalogHandler) DeleteBaseColor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteBaseColor(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return transport.OK(c, echo.Map{"deleted": id})
}

// ── Keycap designs ───────────────────────────────────────────────────────

func (h *CatalogHandler) ListKeycapDesigns(c echo.Context) error {
	page, offset, limit := pageParams(c)
	total, items, err := h.Svc.ListKeycapDesigns(c.Request().Context(), componentFilter(c), offset, limit)
	if err != nil {
		return httpError(err)
	}
	return transport.List(c, items, page, limit, total)
}

func (h *CatalogHandler) GetKeycapDesign(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.Svc.GetKeycapDesign(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, item)
}

func (h *CatalogHandler) CreateKeycapDesign(c echo.Context) error {
	var req transport.CreateComponentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	item, err := h.Svc.CreateKeycapDesign(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return transport.Created(c, item)
}

func (h *CatalogHandler) PatchKeycapDesign(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req transport.PatchComponentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	item, err := h.Svc.PatchKeycapDesign(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, item)
}

func (h *CatalogHandler) DeleteKeycapDesign(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteKeycapDesign(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return transport.OK(c, echo.Map{"deleted": id})
}

// ── Switch types ─────────────────────────────────────────────────────────

func (h *CatalogHandler) ListSwitchTypes(c echo.Context) error {
	page, offset, limit := pageParams(c)
	total, items, err := h.Svc.ListSwitchTypes(c.Request().Context(), componentFilter(c), offset, limit)
	if err != nil {
		return httpError(err)
	}
	return transport.List(c, items, page, limit, total)
}

func (h *CatalogHandler) GetSwitchType(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.Svc.GetSwitchType(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, item)
}

func (h *CatalogHandler) CreateSwitchType(c echo.Context) error {
	var req transport.CreateComponentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	item, err := h.Svc.CreateSwitchType(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return transport.Created(c, item)
}

func (h *CatalogHandler) PatchSwitchType(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req transport.PatchComponentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	item, err := h.Svc.PatchSwitchType(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, item)
}

func (h *CatalogHandler) DeleteSwitchType(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteSwitchType(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return transport.OK(c, echo.Map{"deleted": id})
}

// ── Prebuilt fidgets ─────────────────────────────────────────────────────

func (h *CatalogHandler) ListPrebuiltFidgets(c echo.Context) error {
	page, offset, limit := pageParams(c)
	f := repo.PrebuiltFilter{
		ActiveOnly:   c.QueryParam("active") == "true",
		FeaturedOnly: c.QueryParam("featured") == "true",
		Tag:          c.QueryParam("tag"),
	}
	total, items, err := h.Svc.ListPrebuiltFidgets(c.Request().Context(), f, offset, limit)
	if err != nil {
		return httpError(err)
	}
	return transport.List(c, items, page, limit, total)
}

func (h *CatalogHandler) GetPrebuiltFidget(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.Svc.GetPrebuiltFidget(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, item)
}

func (h *CatalogHandler) CreatePrebuiltFidget(c echo.Context) error {
	var req transport.CreatePrebuiltRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	item, err := h.Svc.CreatePrebuiltFidget(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return transport.Created(c, item)
}

func (h *CatalogHandler) PatchPrebuiltFidget(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req transport.PatchPrebuiltRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	item, err := h.Svc.PatchPrebuiltFidget(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, item)
}

func (h *CatalogHandler) DeletePrebuiltFidget(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeletePrebuiltFidget(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return transport.OK(c, echo.Map{"deleted": id})
}

// ── Other fidgets ────────────────────────────────────────────────────────

func (h *CatalogHandler) ListOtherFidgets(c echo.Context) error {
	page, offset, limit := pageParams(c)
	f := repo.OtherFilter{
		ActiveOnly:   c.QueryParam("active") == "true",
		FeaturedOnly: c.QueryParam("featured") == "true",
		Category:     c.QueryParam("category"),
	}
	total, items, err := h.Svc.ListOtherFidgets(c.Request().Context(), f, offset, limit)
	if err != nil {
		return httpError(err)
	}
	return transport.List(c, items, page, limit, total)
}

func (h *CatalogHandler) GetOtherFidget(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.Svc.GetOtherFidget(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, item)
}

func (h *CatalogHandler) CreateOtherFidget(c echo.Context) error {
	var req transport.CreateOtherFidgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	item, err := h.Svc.CreateOtherFidget(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return transport.Created(c, item)
}

func (h *CatalogHandler) PatchOtherFidget(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req transport.PatchOtherFidgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	item, err := h.Svc.PatchOtherFidget(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, item)
}

func (h *CatalogHandler) DeleteOtherFidget(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteOtherFidget(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return transport.OK(c, echo.Map{"deleted": id})
}

// ── Item images ──────────────────────────────────────────────────────────

func (h *CatalogHandler) ListImages(c echo.Context) error {
	ownerID, err := service.ParseID(c.QueryParam("owner_id"))
	if err != nil {
		return httpError(err)
	}
	images, err := h.Svc.ListImages(c.Request().Context(), c.QueryParam("owner_type"), ownerID)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, images)
}

func (h *CatalogHandler) AddImage(c echo.Context) error {
	var req transport.AddImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	img, err := h.Svc.AddImage(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return transport.Created(c, img)
}

func (h *CatalogHandler) DeleteImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	img, err := h.Svc.DeleteImage(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return transport.OK(c, img)
}
