package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"glamstore/internal/repository"
)

type HealthHandler struct {
	store repository.Store
}

func NewHealthHandler(store repository.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// GET /api/v1/health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return c.Status(503).JSON(fiber.Map{"status": "unavailable", "backend": h.store.Name()})
	}
	return c.JSON(fiber.Map{"status": "ok", "backend": h.store.Name()})
}
