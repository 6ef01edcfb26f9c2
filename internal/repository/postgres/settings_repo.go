package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"glamstore/internal/model"
	"glamstore/internal/repository"
)

type settingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepo{db}
}

func (r *settingsRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	if err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error; err != nil {
		return nil, translate(err, "find setting")
	}
	return &setting, nil
}

func (r *settingsRepo) Put(ctx context.Context, setting *model.Setting) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
	}).Create(setting).Error
	return translate(err, "put setting")
}
