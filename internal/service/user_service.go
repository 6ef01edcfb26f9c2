package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"glamstore/internal/identity"
	"glamstore/internal/model"
	"glamstore/internal/repository"
)

type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	CreateUser(ctx context.Context, req *CreateUserRequest, by *Principal) (*model.User, error)
	UpdateUser(ctx context.Context, id string, req *UpdateUserRequest, by *Principal) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
	UserOrders(ctx context.Context, id string) ([]model.Order, error)
	LinkExternalID(ctx context.Context, localID, externalID string) (*model.User, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
}

type CreateUserRequest struct {
	Name       string     `json:"name" validate:"required"`
	Email      string     `json:"email" validate:"required,email"`
	Password   string     `json:"password" validate:"omitempty,min=8"`
	Role       model.Role `json:"role" validate:"omitempty,oneof=admin customer"`
	ExternalID string     `json:"external_id"`
}

type UpdateUserRequest struct {
	model.UserPatch
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

type userService struct {
	users      repository.UserRepository
	reconciler *repository.Reconciler
}

func NewUserService(users repository.UserRepository, reconciler *repository.Reconciler) UserService {
	return &userService{users: users, reconciler: reconciler}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// GetUser accepts an id from either identifier space.
func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.reconciler.ResolveUser(ctx, id)
}

func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest, by *Principal) (*model.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := checkExternalID(req.ExternalID); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, req.Email, ""); err != nil {
		return nil, err
	}

	user := &model.User{
		Name:       strings.TrimSpace(req.Name),
		Email:      req.Email,
		Role:       req.Role,
		ExternalID: req.ExternalID,
	}
	if user.Role == "" {
		user.Role = model.RoleCustomer
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, errors.Wrap(err, "hash password")
		}
	}
	user.CreatedBy = by.id()
	user.UpdatedBy = by.id()

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req *UpdateUserRequest, by *Principal) (*model.User, error) {
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		req.Email = &email
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.ExternalID != nil {
		if err := checkExternalID(*req.ExternalID); err != nil {
			return nil, err
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Email != nil && *req.Email != user.Email {
		if err := s.ensureEmailFree(ctx, *req.Email, user.ID); err != nil {
			return nil, err
		}
	}
	if req.ExternalID != nil && *req.ExternalID != "" && *req.ExternalID != user.ExternalID {
		holders, err := s.users.FindByExternalID(ctx, *req.ExternalID)
		if err != nil {
			return nil, err
		}
		if len(holders) > 0 {
			return nil, errors.Wrap(repository.ErrConflict, "External ID is already linked to another user")
		}
	}

	req.UserPatch.Apply(user)
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, errors.Wrap(err, "hash password")
		}
	}
	user.UpdatedBy = by.id()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// UserOrders is the order history of a user named by an id from either
// identifier space.
func (s *userService) UserOrders(ctx context.Context, id string) ([]model.Order, error) {
	return s.reconciler.OrdersForUser(ctx, id)
}

func (s *userService) LinkExternalID(ctx context.Context, localID, externalID string) (*model.User, error) {
	return s.reconciler.LinkExternalID(ctx, localID, externalID)
}

func (s *userService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < 8 {
		return invalid("Password must be at least 8 characters")
	}
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if err := user.SetPassword(newPassword); err != nil {
		return errors.Wrap(err, "hash password")
	}
	return s.users.UpdatePassword(ctx, user.ID, user.PasswordHash)
}

func (s *userService) ensureEmailFree(ctx context.Context, email, ownerID string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != ownerID:
		return errors.Wrap(repository.ErrConflict, "Email already exists")
	}
	return nil
}

func checkExternalID(id string) error {
	if id != "" && !identity.IsExternal(id) {
		return invalid("External ID must start with " + identity.ExternalPrefix)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
