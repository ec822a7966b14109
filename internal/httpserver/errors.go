package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/hamza-boudefa/Fidgi-sub001/internal/media"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/repo"
	"github.com/hamza-boudefa/Fidgi-sub001/internal/service"
)

// httpError maps domain errors to HTTP status codes. Anything unknown
// propagates as-is and surfaces as a generic 500.
func httpError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrValidation), errors.Is(err, media.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInactiveAccount):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, repo.ErrInsufficientStock),
		errors.Is(err, repo.ErrInvalidTransition),
		errors.Is(err, repo.ErrOrderNotDeletable),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrSetupDone):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return err
}
