package handler

import (
	"github.com/gofiber/fiber/v2"

	"glamstore/internal/middleware"
	"glamstore/internal/model"
	"glamstore/internal/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.ListCategories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	category, err := h.categoryService.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) GetCategoryBySlug(c *fiber.Ctx) error {
	category, err := h.categoryService.GetCategoryBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req model.Category
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.categoryService.CreateCategory(c.UserContext(), &req, middleware.CurrentPrincipal(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(req)
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	var patch model.CategoryPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c)
	}
	category, err := h.categoryService.UpdateCategory(c.UserContext(), c.Params("id"), patch, middleware.CurrentPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categoryService.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
