package postgres

import (
	"context"

	"gorm.io/gorm"

	"glamstore/internal/model"
	"glamstore/internal/repository"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&products).Error
	return products, translate(err, "find products")
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	if !isUUID(id) {
		return nil, repository.ErrNotFound
	}
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find product")
	}
	return &product, nil
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return translate(r.db.WithContext(ctx).Create(product).Error, "create product")
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return translate(r.db.WithContext(ctx).Save(product).Error, "update product")
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return repository.ErrNotFound
	}
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
