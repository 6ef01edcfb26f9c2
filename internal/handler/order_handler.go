package handler

import (
	"github.com/gofiber/fiber/v2"

	"glamstore/internal/middleware"
	"glamstore/internal/model"
	"glamstore/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type UpdateStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req service.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	order, err := h.orderService.CreateOrder(c.UserContext(), &req, middleware.CurrentPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(order)
}

// GET /api/v1/orders?user_id=...
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.ListOrders(c.UserContext(), c.Query("user_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.orderService.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// PUT /api/v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	order, err := h.orderService.UpdateStatus(c.UserContext(), c.Params("id"), req.Status, middleware.CurrentPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// DELETE /api/v1/orders/:id
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	if err := h.orderService.DeleteOrder(c.UserContext(), c.Params("id"), middleware.CurrentPrincipal(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order deleted successfully"})
}

// MyOrders is the caller's own order history, found across both id spaces.
// GET /api/v1/me/orders
func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	principal := middleware.CurrentPrincipal(c)
	if principal == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	orders, err := h.orderService.OrdersForUser(c.UserContext(), principal.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}
