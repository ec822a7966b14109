package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/logging"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type ListMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type ListResponse struct {
	Data any      `json:"data"`
	Meta ListMeta `json:"meta"`
}

func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

func Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

func List(c echo.Context, items any, page, size int, total int64) error {
	offset := (page - 1) * size
	return OK(c, ListResponse{
		Data: items,
		Meta: ListMeta{
			Page:       page,
			Size:       size,
			Total:      total,
			TotalPages: (total + int64(size) - 1) / int64(size),
			HasPrev:    page > 1,
			HasNext:    int64(offset+size) < total,
		},
	})
}

// HTTPErrorHandler converts every error escaping a handler into the envelope.
// Unrecognized errors become a generic 500 with the detail kept in the logs.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	} else {
		logging.FromContext(c.Request().Context()).Error("unhandled error", "error", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, APIResponse{Success: false, Error: msg})
}
