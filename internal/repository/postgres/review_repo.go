package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"glamstore/internal/model"
	"glamstore/internal/repository"
)

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepo{db}
}

func (r *reviewRepo) FindByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, translate(err, "find reviews")
	}
	return reviews, nil
}

func (r *reviewRepo) Upsert(ctx context.Context, review *model.Review) error {
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "user_name", "verified", "updated_at", "updated_by"}),
	}).Create(review).Error
	if err != nil {
		return translate(err, "upsert review")
	}
	// On conflict the generated id is not the stored one; reload the row.
	err = db.Where("product_id = ? AND user_id = ?", review.ProductID, review.UserID).First(review).Error
	return translate(err, "reload review")
}
