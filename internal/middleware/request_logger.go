package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const errorKey = "error"

// RecordError attaches the cause of a failed request so RequestLogger can
// report it alongside the status.
func RecordError(c *fiber.Ctx, err error) {
	c.Locals(errorKey, err)
}

// RequestLogger writes one structured line per request.
func RequestLogger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		entry := log.WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    time.Since(start).String(),
			"ip":         c.IP(),
			"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
		})
		if principal := CurrentPrincipal(c); principal != nil {
			entry = entry.WithField("user_id", principal.ID)
		}
		if recorded, ok := c.Locals(errorKey).(error); ok {
			entry = entry.WithError(recorded)
		} else if err != nil {
			entry = entry.WithError(err)
		}

		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
		return err
	}
}
