package service

import (
	"context"
	"strings"

	"glamstore/internal/model"
	"glamstore/internal/repository"
)

type ReviewService interface {
	ListForProduct(ctx context.Context, productID string) (*model.ReviewSummary, error)
	Submit(ctx context.Context, productID string, req *ReviewRequest, by *Principal) (*model.Review, error)
}

type ReviewRequest struct {
	Rating   int    `json:"rating" validate:"min=1,max=5"`
	Comment  string `json:"comment" validate:"required"`
	UserName string `json:"user_name"`
}

type reviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) ReviewService {
	return &reviewService{reviews: reviews, products: products}
}

func (s *reviewService) ListForProduct(ctx context.Context, productID string) (*model.ReviewSummary, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	reviews, err := s.reviews.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	summary := model.Summarize(reviews)
	return &summary, nil
}

// Submit stores the caller's review of a product, replacing an earlier one.
func (s *reviewService) Submit(ctx context.Context, productID string, req *ReviewRequest, by *Principal) (*model.Review, error) {
	req.Comment = strings.TrimSpace(req.Comment)
	if err := validate(req); err != nil {
		return nil, err
	}
	if by == nil || by.ID == "" {
		return nil, ErrForbidden
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.UserName)
	if name == "" {
		name = by.Name
	}
	if name == "" {
		name = "Anonymous"
	}

	review := &model.Review{
		ProductID: product.ID,
		UserID:    by.ID,
		UserName:  name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Verified:  true,
	}
	review.CreatedBy = by.ID
	review.UpdatedBy = by.ID
	if err := s.reviews.Upsert(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
