package postgres

import (
	"context"

	"gorm.io/gorm"

	"glamstore/internal/model"
	"glamstore/internal/repository"
)

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, translate(err, "find categories")
}

func (r *categoryRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	if !isUUID(id) {
		return nil, repository.ErrNotFound
	}
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find category")
	}
	return &category, nil
}

func (r *categoryRepo) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, translate(err, "find category by slug")
	}
	return &category, nil
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return translate(r.db.WithContext(ctx).Create(category).Error, "create category")
}

func (r *categoryRepo) Update(ctx context.Context, category *model.Category) error {
	return translate(r.db.WithContext(ctx).Save(category).Error, "update category")
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return repository.ErrNotFound
	}
	res := r.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete category")
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
