package postgres

import (
	"context"

	"gorm.io/gorm"

	"glamstore/internal/model"
	"glamstore/internal/repository"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) repository.UserRepository {
	return &userRepo{db}
}

func (r *userRepo) IsLocalID(id string) bool {
	return isUUID(id)
}

func (r *userRepo) FindAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, translate(err, "find users")
	}
	return users, nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if !isUUID(id) {
		return nil, repository.ErrNotFound
	}
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find user")
	}
	return &user, nil
}

func (r *userRepo) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	ids = uuids(ids)
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	var users []model.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, translate(err, "find users by id")
	}
	return users, nil
}

func (r *userRepo) FindByExternalID(ctx context.Context, externalID string) ([]model.User, error) {
	var users []model.User
	// Two rows are enough to tell a match from an ambiguous one.
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).Limit(2).Find(&users).Error
	if err != nil {
		return nil, translate(err, "find users by external id")
	}
	return users, nil
}

func (r *userRepo) FindAllByExternalIDs(ctx context.Context, externalIDs []string) ([]model.User, error) {
	if len(externalIDs) == 0 {
		return []model.User{}, nil
	}
	var users []model.User
	if err := r.db.WithContext(ctx).Where("external_id IN ?", externalIDs).Find(&users).Error; err != nil {
		return nil, translate(err, "find users by external ids")
	}
	return users, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "find user by email")
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, "create user")
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Save(user).Error, "update user")
}

func (r *userRepo) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	if !isUUID(id) {
		return repository.ErrNotFound
	}
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", hashedPassword)
	if res.Error != nil {
		return translate(res.Error, "update password")
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return repository.ErrNotFound
	}
	res := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete user")
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
