package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/media"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/transport"
)

type MediaHandler struct {
	Svc *media.Service
}

// Upload takes a multipart form with a "file" part and an "item_type" field
// naming the target folder.
func (h *MediaHandler) Upload(c echo.Context) error {
	if h.Svc == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "media storage is not configured")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	itemType := c.FormValue("item_type")

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
	}
	defer src.Close()

	result, err := h.Svc.Upload(c.Request().Context(), itemType, fh.Header.Get(echo.HeaderContentType), fh.Size, src)
	if err != nil {
		return httpError(err)
	}
	return transport.Created(c, result)
}

func (h *MediaHandler) Delete(c echo.Context) error {
	if h.Svc == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "media storage is not configured")
	}

	var req transport.DeleteMediaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.Svc.Delete(c.Request().Context(), req.URL, req.PublicID); err != nil {
		return httpError(err)
	}
	return transport.OK(c, echo.Map{"deleted": true})
}
