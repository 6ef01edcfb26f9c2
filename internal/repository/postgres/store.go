package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"glamstore/internal/model"
	"glamstore/internal/repository"
)

// Store is the relational backend of the data-access facade.
type Store struct {
	db         *gorm.DB
	products   repository.ProductRepository
	orders     repository.OrderRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	reviews    repository.ReviewRepository
	settings   repository.SettingsRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		products:   NewProductRepo(db),
		orders:     NewOrderRepo(db),
		users:      NewUserRepo(db),
		categories: NewCategoryRepo(db),
		reviews:    NewReviewRepo(db),
		settings:   NewSettingsRepo(db),
	}
}

// Migrate creates or updates the schema.
func (s *Store) Migrate() error {
	err := s.db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.LineItem{},
		&model.Review{},
		&model.Setting{},
	)
	return errors.Wrap(err, "auto migrate")
}

func (s *Store) Name() string { return "postgres" }

func (s *Store) Products() repository.ProductRepository { return s.products }
func (s *Store) Orders() repository.OrderRepository { return s.orders }
func (s *Store) Users() repository.UserRepository { return s.users }
func (s *Store) Categories() repository.CategoryRepository { return s.categories }
func (s *Store) Reviews() repository.ReviewRepository { return s.reviews }
func (s *Store) Settings() repository.SettingsRepository { return s.settings }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql db")
	}
	return errors.Wrap(sqlDB.PingContext(ctx), "ping postgres")
}

func (s *Store) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql db")
	}
	return errors.Wrap(sqlDB.Close(), "close postgres")
}
