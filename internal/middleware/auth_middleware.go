package middleware

import (
	"strings"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"glamstore/internal/repository"
	"glamstore/internal/service"
	"glamstore/pkg/jwt"
)

const principalKey = "principal"

// RequireAuth resolves the bearer token to a principal and stores it in the
// request locals. Websocket clients may pass the token as ?token= instead.
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}

		principal, err := auth.Authenticate(c.UserContext(), tokenString)
		switch {
		case err == nil:
		case errors.Is(err, jwt.ErrInvalidToken):
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		case errors.Is(err, repository.ErrAmbiguousIdentity):
			return c.Status(409).JSON(fiber.Map{"error": "Account is linked to more than one user"})
		default:
			RecordError(c, err)
			if hub := sentryfiber.GetHubFromContext(c); hub != nil {
				hub.CaptureException(err)
			}
			return c.Status(500).JSON(fiber.Map{"error": "Failed to authenticate"})
		}

		c.Locals(principalKey, principal)
		c.Locals("user_id", principal.ID)
		return c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := CurrentPrincipal(c)
		if principal == nil {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		if !principal.IsAdmin() {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: admin access required"})
		}
		return c.Next()
	}
}

// CurrentPrincipal returns the caller set by RequireAuth, or nil.
func CurrentPrincipal(c *fiber.Ctx) *service.Principal {
	principal, _ := c.Locals(principalKey).(*service.Principal)
	return principal
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if token := c.Query("token"); token != "" {
			return token, nil
		}
		return "", jwt.ErrMissingToken
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", errors.New("Invalid authorization format. Use: Bearer <token>")
	}
	return parts[1], nil
}
