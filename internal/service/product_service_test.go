package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glamstore/internal/model"
	"glamstore/internal/repository"
)

var admin = &Principal{ID: "u-admin", Name: "Ada", Role: model.RoleAdmin, Registered: true}

func catalog(store *memStore, ids ...string) {
	for _, id := range ids {
		store.products = append(store.products, model.Product{
			BaseModel:   model.BaseModel{ID: id},
			Name:        "Product " + id,
			Description: "desc",
			Price:       decimal.RequireFromString("10.00"),
			Category:    "Makeup",
			Image:       "/img/" + id,
			Stock:       5,
		})
	}
}

func sold(store *memStore, user string, quantities map[string]int) {
	order := model.Order{ID: store.nextID("o"), UserID: user, Status: model.OrderDelivered}
	for id, q := range quantities {
		order.Items = append(order.Items, model.LineItem{ProductID: id, Quantity: q})
	}
	store.orders = append(store.orders, order)
}

func TestProductServiceCreate(t *testing.T) {
	store := newMemStore()
	hub := &recorder{}
	svc := NewProductService(store, &fakeImages{}, hub, nopLogger())

	product := &model.Product{
		Name: "Lip Gloss", Description: "Shiny", Price: decimal.RequireFromString("12.50"),
		Category: "Makeup", ImageCID: "bafyabc", Stock: 3,
	}
	require.NoError(t, svc.CreateProduct(context.Background(), product, admin))

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "https://gateway.test/ipfs/bafyabc", product.Image)
	assert.Equal(t, "u-admin", product.CreatedBy)
	assert.Equal(t, []string{"product_created"}, hub.actions())
}

func TestProductServiceCreateRejectsInvalid(t *testing.T) {
	svc := NewProductService(newMemStore(), nil, nil, nopLogger())

	err := svc.CreateProduct(context.Background(), &model.Product{Name: "No price", Price: decimal.NewFromInt(-1)}, admin)

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.NotEmpty(t, validation.Fields)
}

func TestProductServiceUpdate(t *testing.T) {
	store := newMemStore()
	catalog(store, "a")
	hub := &recorder{}
	svc := NewProductService(store, nil, hub, nopLogger())

	stock := 9
	updated, err := svc.UpdateProduct(context.Background(), "a", model.ProductPatch{Stock: &stock}, admin)
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Stock)
	assert.Equal(t, "Product a", updated.Name)

	_, err = svc.UpdateProduct(context.Background(), "missing", model.ProductPatch{Stock: &stock}, admin)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, []string{"product_updated"}, hub.actions())
}

func TestProductServiceDeleteUnpinsImage(t *testing.T) {
	store := newMemStore()
	catalog(store, "a")
	store.products[0].ImageCID = "bafyold"
	images := &fakeImages{unpinErr: errors.New("gateway down")}
	svc := NewProductService(store, images, nil, nopLogger())

	require.NoError(t, svc.DeleteProduct(context.Background(), "a", admin))

	assert.Equal(t, []string{"bafyold"}, images.unpinned)
	assert.Empty(t, store.products)
}

func TestProductServiceBestSellers(t *testing.T) {
	store := newMemStore()
	catalog(store, "a", "b", "c")
	sold(store, "u1", map[string]int{"a": 2})
	sold(store, "u1", map[string]int{"b": 5})
	sold(store, "u2", map[string]int{"a": 1})
	svc := NewProductService(store, nil, nil, nopLogger())

	best, err := svc.BestSellers(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, best, 2)
	assert.Equal(t, "b", best[0].ID)
	assert.Equal(t, "a", best[1].ID)

	store.failOrders = errors.New("connection refused")
	_, err = svc.BestSellers(context.Background(), 2)
	assert.Error(t, err)
}

func TestProductServiceShowcase(t *testing.T) {
	ctx := context.Background()

	t.Run("featured products in configured order", func(t *testing.T) {
		store := newMemStore()
		catalog(store, "a", "b", "c", "d", "e")
		raw, _ := json.Marshal(model.FeaturedProducts{FeaturedProductIDs: []string{"c", "missing", "a"}})
		store.settings[model.SettingFeaturedProducts] = model.Setting{Key: model.SettingFeaturedProducts, Value: raw}
		svc := NewProductService(store, nil, nil, nopLogger())

		showcase, err := svc.Showcase(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, ShowcaseFeatured, showcase.Source)
		assert.Equal(t, []string{"c", "a", "b", "d"}, ids(showcase.Products))
	})

	t.Run("best sellers when nothing is featured", func(t *testing.T) {
		store := newMemStore()
		catalog(store, "a", "b", "c")
		sold(store, "u1", map[string]int{"c": 3})
		svc := NewProductService(store, nil, nil, nopLogger())

		showcase, err := svc.Showcase(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, ShowcaseBestSellers, showcase.Source)
		assert.Equal(t, []string{"c", "a", "b"}, ids(showcase.Products))
	})

	t.Run("order failure degrades to catalog", func(t *testing.T) {
		store := newMemStore()
		catalog(store, "a", "b")
		store.failOrders = errors.New("timeout")
		svc := NewProductService(store, nil, nil, nopLogger())

		showcase, err := svc.Showcase(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids(showcase.Products))
	})
}

func ids(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
