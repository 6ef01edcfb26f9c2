package handler

import (
	"github.com/gofiber/fiber/v2"

	"glamstore/internal/middleware"
	"glamstore/internal/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GET /api/v1/products/:id/reviews
func (h *ReviewHandler) GetReviews(c *fiber.Ctx) error {
	summary, err := h.reviewService.ListForProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// POST /api/v1/products/:id/reviews
func (h *ReviewHandler) SubmitReview(c *fiber.Ctx) error {
	var req service.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	review, err := h.reviewService.Submit(c.UserContext(), c.Params("id"), &req, middleware.CurrentPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(review)
}
