package handler

import (
	"github.com/gofiber/fiber/v2"

	"glamstore/internal/middleware"
	"glamstore/internal/model"
	"glamstore/internal/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.productService.ListProducts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.productService.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// GET /api/v1/products/best-sellers?limit=4
func (h *ProductHandler) GetBestSellers(c *fiber.Ctx) error {
	products, err := h.productService.BestSellers(c.UserContext(), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// GET /api/v1/products/showcase?limit=4
func (h *ProductHandler) GetShowcase(c *fiber.Ctx) error {
	showcase, err := h.productService.Showcase(c.UserContext(), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(showcase)
}

// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req model.Product
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	if err := h.productService.CreateProduct(c.UserContext(), &req, middleware.CurrentPrincipal(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(req)
}

// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var patch model.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c)
	}

	product, err := h.productService.UpdateProduct(c.UserContext(), c.Params("id"), patch, middleware.CurrentPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.productService.DeleteProduct(c.UserContext(), c.Params("id"), middleware.CurrentPrincipal(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
