package postgres

import (
	"context"

	"gorm.io/gorm"

	"glamstore/internal/model"
	"glamstore/internal/repository"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) FindAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, translate(err, "find orders")
	}
	return orders, nil
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	if !isUUID(id) {
		return nil, repository.ErrNotFound
	}
	var order model.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find order")
	}
	return &order, nil
}

func (r *orderRepo) FindByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, translate(err, "find orders by user")
	}
	return orders, nil
}

// Create inserts the order and its line items in one transaction.
func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	return translate(r.db.WithContext(ctx).Create(order).Error, "create order")
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !isUUID(id) {
		return nil, repository.ErrNotFound
	}
	res := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, translate(res.Error, "update order status")
	}
	if res.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *orderRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return repository.ErrNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&model.LineItem{}).Error; err != nil {
			return translate(err, "delete order items")
		}
		res := tx.Delete(&model.Order{}, "id = ?", id)
		if res.Error != nil {
			return translate(res.Error, "delete order")
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}
