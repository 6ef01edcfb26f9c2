// Package fallback serves a fixed in-memory dataset through the store
// interfaces. Every write fails with repository.ErrReadOnly.
package fallback

import (
	"context"
	"slices"

	"glamstore/internal/identity"
	"glamstore/internal/model"
	"glamstore/internal/repository"
)

type Store struct {
	data Dataset
}

func NewStore(data Dataset) *Store {
	return &Store{data: data}
}

func (s *Store) Name() string { return "static" }

func (s *Store) Products() repository.ProductRepository { return productRepo{s} }
func (s *Store) Orders() repository.OrderRepository { return orderRepo{s} }
func (s *Store) Users() repository.UserRepository { return userRepo{s} }
func (s *Store) Categories() repository.CategoryRepository { return categoryRepo{s} }
func (s *Store) Reviews() repository.ReviewRepository { return reviewRepo{s} }
func (s *Store) Settings() repository.SettingsRepository { return settingsRepo{s} }

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close(context.Context) error { return nil }

// find returns a copy of the first element matching, so callers cannot
// modify the dataset.
func find[T any](items []T, match func(T) bool) (*T, error) {
	for _, item := range items {
		if match(item) {
			found := item
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func filter[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0)
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

func all[T any](T) bool { return true }

type productRepo struct{ s *Store }

func (r productRepo) FindAll(context.Context) ([]model.Product, error) {
	return filter(r.s.data.Products, all[model.Product]), nil
}

func (r productRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	return find(r.s.data.Products, func(p model.Product) bool { return p.ID == id })
}

func (productRepo) Create(context.Context, *model.Product) error { return repository.ErrReadOnly }
func (productRepo) Update(context.Context, *model.Product) error { return repository.ErrReadOnly }
func (productRepo) Delete(context.Context, string) error { return repository.ErrReadOnly }

type orderRepo struct{ s *Store }

func (r orderRepo) FindAll(context.Context) ([]model.Order, error) {
	return cloneOrders(filter(r.s.data.Orders, all[model.Order])), nil
}

func (r orderRepo) FindByID(_ context.Context, id string) (*model.Order, error) {
	order, err := find(r.s.data.Orders, func(o model.Order) bool { return o.ID == id })
	if err != nil {
		return nil, err
	}
	order.Items = slices.Clone(order.Items)
	return order, nil
}

func (r orderRepo) FindByUserID(_ context.Context, userID string) ([]model.Order, error) {
	return cloneOrders(filter(r.s.data.Orders, func(o model.Order) bool { return o.UserID == userID })), nil
}

func (orderRepo) Create(context.Context, *model.Order) error { return repository.ErrReadOnly }
func (orderRepo) Delete(context.Context, string) error { return repository.ErrReadOnly }

func (orderRepo) UpdateStatus(context.Context, string, model.OrderStatus) (*model.Order, error) {
	return nil, repository.ErrReadOnly
}

func cloneOrders(orders []model.Order) []model.Order {
	for i := range orders {
		orders[i].Items = slices.Clone(orders[i].Items)
	}
	return orders
}

type userRepo struct{ s *Store }

// IsLocalID accepts any non-empty id outside the external space; dataset
// ids are plain labels.
func (userRepo) IsLocalID(id string) bool {
	return id != "" && !identity.IsExternal(id)
}

func (r userRepo) FindAll(context.Context) ([]model.User, error) {
	return filter(r.s.data.Users, all[model.User]), nil
}

func (r userRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	return find(r.s.data.Users, func(u model.User) bool { return u.ID == id })
}

func (r userRepo) FindByIDs(_ context.Context, ids []string) ([]model.User, error) {
	return filter(r.s.data.Users, func(u model.User) bool { return slices.Contains(ids, u.ID) }), nil
}

func (r userRepo) FindByExternalID(_ context.Context, externalID string) ([]model.User, error) {
	return filter(r.s.data.Users, func(u model.User) bool {
		return u.ExternalID != "" && u.ExternalID == externalID
	}), nil
}

func (r userRepo) FindAllByExternalIDs(_ context.Context, externalIDs []string) ([]model.User, error) {
	return filter(r.s.data.Users, func(u model.User) bool {
		return u.ExternalID != "" && slices.Contains(externalIDs, u.ExternalID)
	}), nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return find(r.s.data.Users, func(u model.User) bool { return u.Email == email })
}

func (userRepo) Create(context.Context, *model.User) error { return repository.ErrReadOnly }
func (userRepo) Update(context.Context, *model.User) error { return repository.ErrReadOnly }
func (userRepo) Delete(context.Context, string) error { return repository.ErrReadOnly }

func (userRepo) UpdatePassword(context.Context, string, string) error {
	return repository.ErrReadOnly
}

type categoryRepo struct{ s *Store }

func (r categoryRepo) FindAll(context.Context) ([]model.Category, error) {
	return filter(r.s.data.Categories, all[model.Category]), nil
}

func (r categoryRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	return find(r.s.data.Categories, func(c model.Category) bool { return c.ID == id })
}

func (r categoryRepo) FindBySlug(_ context.Context, slug string) (*model.Category, error) {
	return find(r.s.data.Categories, func(c model.Category) bool { return c.Slug == slug })
}

func (categoryRepo) Create(context.Context, *model.Category) error { return repository.ErrReadOnly }
func (categoryRepo) Update(context.Context, *model.Category) error { return repository.ErrReadOnly }
func (categoryRepo) Delete(context.Context, string) error { return repository.ErrReadOnly }

type reviewRepo struct{ s *Store }

func (r reviewRepo) FindByProduct(_ context.Context, productID string) ([]model.Review, error) {
	return filter(r.s.data.Reviews, func(rv model.Review) bool { return rv.ProductID == productID }), nil
}

func (reviewRepo) Upsert(context.Context, *model.Review) error { return repository.ErrReadOnly }

type settingsRepo struct{ s *Store }

func (r settingsRepo) Get(_ context.Context, key string) (*model.Setting, error) {
	setting, err := find(r.s.data.Settings, func(st model.Setting) bool { return st.Key == key })
	if err != nil {
		return nil, err
	}
	setting.Value = slices.Clone(setting.Value)
	return setting, nil
}

func (settingsRepo) Put(context.Context, *model.Setting) error { return repository.ErrReadOnly }
