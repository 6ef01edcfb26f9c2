package handler

import (
	"github.com/gofiber/fiber/v2"

	"glamstore/internal/middleware"
	"glamstore/internal/model"
	"glamstore/internal/service"
)

type SettingsHandler struct {
	settingsService service.SettingsService
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

type FeaturedProductsRequest struct {
	FeaturedProductIDs []string `json:"featured_product_ids"`
}

type CarouselRequest struct {
	Images []model.CarouselImage `json:"images"`
}

// GetFeaturedProducts always answers 200.
// GET /api/v1/settings/featured-products
func (h *SettingsHandler) GetFeaturedProducts(c *fiber.Ctx) error {
	return c.JSON(h.settingsService.FeaturedProducts(c.UserContext()))
}

// POST /api/v1/settings/featured-products
func (h *SettingsHandler) SetFeaturedProducts(c *fiber.Ctx) error {
	var req FeaturedProductsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	featured, err := h.settingsService.SetFeaturedProducts(c.UserContext(), req.FeaturedProductIDs, middleware.CurrentPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "settings": featured})
}

// GET /api/v1/settings/carousel
func (h *SettingsHandler) GetCarousel(c *fiber.Ctx) error {
	carousel, err := h.settingsService.Carousel(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(carousel)
}

// PUT /api/v1/settings/carousel
func (h *SettingsHandler) SetCarousel(c *fiber.Ctx) error {
	var req CarouselRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	carousel, err := h.settingsService.SetCarousel(c.UserContext(), req.Images, middleware.CurrentPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(carousel)
}
