package repository

import (
	"context"

	"github.com/pkg/errors"

	"glamstore/internal/model"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrConflict          = errors.New("record already exists")
	ErrReadOnly          = errors.New("store is read-only")
	ErrAmbiguousIdentity = errors.New("identifier resolves to more than one user")
)

type ProductRepository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	FindAll(ctx context.Context) ([]model.Order, error)
	FindByID(ctx context.Context, id string) (*model.Order, error)
	// FindByUserID matches the stored user id exactly; it does not cross
	// identifier spaces.
	FindByUserID(ctx context.Context, userID string) ([]model.Order, error)
	Create(ctx context.Context, order *model.Order) error
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	FindAll(ctx context.Context) ([]model.User, error)
	// FindByID looks up a local id. Ids that are malformed for the store
	// yield ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.User, error)
	// FindByExternalID returns every user whose external id equals id, so
	// callers can detect duplicates.
	FindByExternalID(ctx context.Context, externalID string) ([]model.User, error)
	FindAllByExternalIDs(ctx context.Context, externalIDs []string) ([]model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id, hashedPassword string) error
	Delete(ctx context.Context, id string) error
	// IsLocalID reports whether id is well-formed as a local id of this store.
	IsLocalID(id string) bool
}

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error
}

type ReviewRepository interface {
	FindByProduct(ctx context.Context, productID string) ([]model.Review, error)
	// Upsert creates the review or replaces the rating and comment of the
	// caller's existing review of the same product.
	Upsert(ctx context.Context, review *model.Review) error
}

type SettingsRepository interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	Put(ctx context.Context, setting *model.Setting) error
}

// Store is the data-access facade. One implementation is chosen at start-up
// and shared by every request.
type Store interface {
	Name() string
	Products() ProductRepository
	Orders() OrderRepository
	Users() UserRepository
	Categories() CategoryRepository
	Reviews() ReviewRepository
	Settings() SettingsRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
