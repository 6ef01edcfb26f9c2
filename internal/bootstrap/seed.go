package bootstrap

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"glamstore/internal/model"
	"glamstore/internal/repository"
	"glamstore/internal/service"
)

type SeedOptions struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
	// Catalog adds the sample categories and products when the catalog is
	// empty.
	Catalog bool
}

// Seed creates the admin account when missing and optionally the sample
// catalog. Running it twice changes nothing.
func Seed(ctx context.Context, store repository.Store, opts SeedOptions, log logrus.FieldLogger) error {
	users := store.Users()
	if _, err := users.FindByEmail(ctx, opts.AdminEmail); errors.Is(err, repository.ErrNotFound) {
		admin := &model.User{Name: opts.AdminName, Email: opts.AdminEmail, Role: model.RoleAdmin}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"
		if err := admin.SetPassword(opts.AdminPassword); err != nil {
			return errors.Wrap(err, "hash admin password")
		}
		if err := users.Create(ctx, admin); err != nil {
			return errors.Wrap(err, "create admin user")
		}
		log.WithField("email", admin.Email).Info("admin user created")
	} else if err != nil {
		return errors.Wrap(err, "find admin user")
	}

	if !opts.Catalog {
		return nil
	}
	existing, err := store.Products().FindAll(ctx)
	if err != nil {
		return errors.Wrap(err, "list products")
	}
	if len(existing) > 0 {
		log.WithField("products", len(existing)).Info("catalog not empty, skipping sample products")
		return nil
	}

	for _, category := range SampleCategories() {
		category := category
		if err := store.Categories().Create(ctx, &category); err != nil && !errors.Is(err, repository.ErrConflict) {
			return errors.Wrapf(err, "create category %s", category.Name)
		}
	}
	products := SampleProducts()
	for i := range products {
		if err := store.Products().Create(ctx, &products[i]); err != nil {
			return errors.Wrapf(err, "create product %s", products[i].Name)
		}
	}
	log.WithField("products", len(products)).Info("sample catalog created")
	return nil
}

func SampleCategories() []model.Category {
	names := []string{"Skincare", "Makeup", "Fragrance", "Haircare"}
	categories := make([]model.Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, model.Category{Name: name, Slug: service.Slugify(name), IsActive: true})
	}
	return categories
}

func SampleProducts() []model.Product {
	product := func(name, description, price, category string, stock int) model.Product {
		return model.Product{
			Name:        name,
			Description: description,
			Price:       decimal.RequireFromString(price),
			Category:    category,
			Image:       "/placeholder.svg?height=300&width=300",
			Stock:       stock,
		}
	}
	return []model.Product{
		product("Hydrating Face Serum", "Hyaluronic acid serum for all-day moisture.", "24.99", "Skincare", 40),
		product("Gentle Foaming Cleanser", "Soap-free cleanser for sensitive skin.", "14.50", "Skincare", 60),
		product("Velvet Matte Lipstick", "Long-wear lipstick with a soft matte finish.", "18.00", "Makeup", 80),
		product("Volumizing Mascara", "Buildable volume without clumps.", "16.75", "Makeup", 55),
		product("Rose Eau de Parfum", "Floral fragrance with notes of rose and musk.", "59.00", "Fragrance", 20),
		product("Argan Repair Hair Oil", "Lightweight oil for frizz control and shine.", "21.25", "Haircare", 35),
	}
}
