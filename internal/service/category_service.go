package service

import (
	"context"
	"regexp"
	"strings"

	"glamstore/internal/model"
	"glamstore/internal/repository"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error)
	CreateCategory(ctx context.Context, req *model.Category, by *Principal) error
	UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch, by *Principal) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *categoryService) GetCategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return s.categories.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
}

func (s *categoryService) CreateCategory(ctx context.Context, req *model.Category, by *Principal) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Slug == "" {
		req.Slug = Slugify(req.Name)
	}
	if err := validate(req); err != nil {
		return err
	}

	req.ID = ""
	req.CreatedBy = by.id()
	req.UpdatedBy = by.id()
	return s.categories.Create(ctx, req)
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, patch model.CategoryPatch, by *Principal) (*model.Category, error) {
	if err := validate(patch); err != nil {
		return nil, err
	}
	existing, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(existing)
	existing.UpdatedBy = by.id()
	if err := validate(existing); err != nil {
		return nil, err
	}
	if err := s.categories.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name and joins its alphanumeric runs with hyphens.
func Slugify(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
