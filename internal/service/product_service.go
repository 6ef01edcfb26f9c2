package service

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"glamstore/internal/model"
	"glamstore/internal/ranking"
	"glamstore/internal/repository"
	"glamstore/internal/ws"
	"glamstore/pkg/pinata"
)

// Showcase sources.
const (
	ShowcaseFeatured    = "featured"
	ShowcaseBestSellers = "best_sellers"
)

// ImageStore is the pinning service holding product and carousel images.
type ImageStore interface {
	Upload(ctx context.Context, name, contentType string, content io.Reader, groupID string) (*pinata.File, error)
	Unpin(ctx context.Context, cid string) error
	GatewayURL(cid string) string
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, req *model.Product, by *Principal) error
	UpdateProduct(ctx context.Context, id string, patch model.ProductPatch, by *Principal) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string, by *Principal) error
	BestSellers(ctx context.Context, limit int) ([]model.Product, error)
	Showcase(ctx context.Context, limit int) (*Showcase, error)
}

// Showcase is the home-page product strip.
type Showcase struct {
	Source   string          `json:"source"`
	Products []model.Product `json:"products"`
}

type productService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	settings repository.SettingsRepository
	images   ImageStore
	wsHub    Broadcaster
	log      logrus.FieldLogger
}

func NewProductService(store repository.Store, images ImageStore, hub Broadcaster, log logrus.FieldLogger) ProductService {
	return &productService{
		products: store.Products(),
		orders:   store.Orders(),
		settings: store.Settings(),
		images:   images,
		wsHub:    broadcasterOrNop(hub),
		log:      log.WithField("service", "product"),
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *productService) CreateProduct(ctx context.Context, req *model.Product, by *Principal) error {
	s.fillImage(req)
	if err := validate(req); err != nil {
		return err
	}

	req.ID = ""
	req.CreatedBy = by.id()
	req.UpdatedBy = by.id()

	if err := s.products.Create(ctx, req); err != nil {
		return err
	}

	s.publish("product_created", req, by, fmt.Sprintf("%s created product '%s'", nameOf(by), req.Name))
	return nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, patch model.ProductPatch, by *Principal) (*model.Product, error) {
	if err := validate(patch); err != nil {
		return nil, err
	}

	existing, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStock := existing.Stock

	patch.Apply(existing)
	s.fillImage(existing)
	existing.UpdatedBy = by.id()
	if err := validate(existing); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.publish("product_updated", map[string]interface{}{
		"id":        existing.ID,
		"name":      existing.Name,
		"old_stock": oldStock,
		"new_stock": existing.Stock,
		"price":     existing.Price,
	}, by, fmt.Sprintf("%s updated product '%s'", nameOf(by), existing.Name))
	return existing, nil
}

// DeleteProduct removes the product and unpins its image. A failed unpin is
// logged; the product stays deleted.
func (s *productService) DeleteProduct(ctx context.Context, id string, by *Principal) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	if product.ImageCID != "" && s.images != nil {
		if err := s.images.Unpin(ctx, product.ImageCID); err != nil {
			s.log.WithError(err).WithField("cid", product.ImageCID).Warn("failed to unpin product image")
		}
	}

	s.publish("product_deleted", map[string]string{"id": product.ID, "name": product.Name}, by,
		fmt.Sprintf("%s deleted product '%s'", nameOf(by), product.Name))
	return nil
}

func (s *productService) BestSellers(ctx context.Context, limit int) ([]model.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ranking.BestSellers(orders, products, limit), nil
}

// Showcase prefers the curated featured list and falls back to best sellers.
// Either way the strip is padded with catalog products up to limit. Only a
// catalog read failure is an error.
func (s *productService) Showcase(ctx context.Context, limit int) (*Showcase, error) {
	if limit <= 0 {
		limit = ranking.DefaultLimit
	}
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	featured, err := loadFeatured(ctx, s.settings)
	if err != nil {
		s.log.WithError(err).Warn("failed to load featured products, using best sellers")
	}
	if selected := ranking.Featured(featured.FeaturedProductIDs, products); len(selected) > 0 {
		return &Showcase{Source: ShowcaseFeatured, Products: ranking.Pad(selected, products, limit)}, nil
	}

	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		s.log.WithError(err).Warn("failed to load orders for best sellers")
		orders = nil
	}
	best := ranking.BestSellers(orders, products, limit)
	return &Showcase{Source: ShowcaseBestSellers, Products: ranking.Pad(best, products, limit)}, nil
}

// fillImage points a product without an image URL at its pinned CID.
func (s *productService) fillImage(p *model.Product) {
	if p.Image == "" && p.ImageCID != "" && s.images != nil {
		p.Image = s.images.GatewayURL(p.ImageCID)
	}
}

func (s *productService) publish(action string, data interface{}, by *Principal, message string) {
	s.wsHub.Publish(ws.Event{Type: "product", Action: action, Data: data, User: by.actor(), Message: message})
}

func nameOf(p *Principal) string {
	if p == nil || p.Name == "" {
		return "someone"
	}
	return p.Name
}

// notFound wraps repository.ErrNotFound with a client-facing message.
func notFound(format string, args ...interface{}) error {
	return errors.Wrapf(repository.ErrNotFound, format, args...)
}
