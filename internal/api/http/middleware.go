package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bz-technologies/helpdesk/internal/observability"
	apperrors "github.com/bz-technologies/helpdesk/pkg/util/errorutil"
)

// RegisterMiddlewares installs, outermost first, the request logger, the
// optional per-request deadline and the error envelope. The logger sits
// outside the envelope so it sees the final status of failed requests.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(observability.RequestLogger(logger, metrics))
	if timeout > 0 {
		app.Use(deadline(timeout))
	}
	app.Use(errorEnvelope(logger, metrics))
}

func deadline(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorEnvelope turns handler errors and panics into
// {"error":{"code","message","details"}} responses.
func errorEnvelope(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("handler panicked",
					zap.String("route", observability.RouteKey(c)),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				err = writeError(c, logger, metrics, apperrors.ToDomainError(err))
			}
		}()
		return c.Next()
	}
}

func writeError(c *fiber.Ctx, logger *zap.Logger, metrics *observability.Metrics, de *apperrors.DomainError) error {
	route := observability.RouteKey(c)
	metrics.RecordError(route, c.Method(), de.Code)
	if de.HTTPStatus >= fiber.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("route", route),
			zap.String("path", c.Path()),
			zap.Error(de),
		)
	}

	body := fiber.Map{"code": de.Code, "message": de.Message}
	if len(de.Details) > 0 {
		body["details"] = de.Details
	}
	return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": body})
}
