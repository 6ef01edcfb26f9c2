package handler

import (
	"strings"
	"unicode"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"glamstore/internal/middleware"
	"glamstore/internal/repository"
	"glamstore/internal/service"
	"glamstore/pkg/jwt"
	"glamstore/pkg/pinata"
)

// respondError maps a service error to its HTTP status. Server-side failures
// are logged with the request, reported to Sentry and answered with a
// generic message.
func respondError(c *fiber.Ctx, err error) error {
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		body := fiber.Map{"error": validation.Message}
		if len(validation.Fields) > 0 {
			body["fields"] = validation.Fields
		}
		return c.Status(400).JSON(body)
	}

	var upstream *pinata.StatusError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": clientMessage(err, repository.ErrNotFound, "Not found")})
	case errors.Is(err, repository.ErrConflict):
		return c.Status(409).JSON(fiber.Map{"error": clientMessage(err, repository.ErrConflict, "Already exists")})
	case errors.Is(err, repository.ErrAmbiguousIdentity):
		return c.Status(409).JSON(fiber.Map{"error": "Identifier matches more than one user"})
	case errors.Is(err, repository.ErrInvalidIdentifier):
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user identifier"})
	case errors.Is(err, repository.ErrReadOnly):
		return c.Status(503).JSON(fiber.Map{"error": "Store is read-only"})
	case errors.Is(err, service.ErrUploadsDisabled):
		return c.Status(503).JSON(fiber.Map{"error": "Image uploads are not configured"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(401).JSON(fiber.Map{"error": "Invalid email or password"})
	case errors.Is(err, jwt.ErrInvalidToken):
		return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(403).JSON(fiber.Map{"error": "Forbidden"})
	case errors.As(err, &upstream):
		capture(c, err)
		return c.Status(502).JSON(fiber.Map{"error": "Image service request failed"})
	}

	capture(c, err)
	return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
}

// clientMessage returns the outermost wrap message of err when it reads as a
// sentence (services capitalise theirs; repositories do not).
func clientMessage(err, sentinel error, fallback string) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		msg = msg[:i]
	}
	if msg == "" || msg == sentinel.Error() || !unicode.IsUpper(rune(msg[0])) {
		return fallback
	}
	return msg
}

func capture(c *fiber.Ctx, err error) {
	middleware.RecordError(c, err)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
}
