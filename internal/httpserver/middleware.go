package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	loggingmw "github.com/Skotchmaster/storefront/internal/middleware/logging"
)

// Common is the middleware stack every route runs behind. RequestID runs before
// the request logger so the logger can pick the generated id up.
func Common(logger *slog.Logger) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		echomw.Recover(),
		echomw.RequestID(),
		loggingmw.RequestLogger(logger),
		echomw.Secure(),
		echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}),
	}
}

// New builds a configured echo instance with the full route table.
func New(logger *slog.Logger, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(Common(logger)...)
	Register(e, d)
	return e
}
