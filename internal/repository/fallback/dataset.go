package fallback

import (
	"time"

	"github.com/shopspring/decimal"

	"glamstore/internal/model"
)

// seededAt pins the dataset timestamps so responses are reproducible.
var seededAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Dataset is the content served when no datastore is configured.
type Dataset struct {
	Products   []model.Product
	Categories []model.Category
	Users      []model.User
	Orders     []model.Order
	Reviews    []model.Review
	Settings   []model.Setting
}

// DefaultDataset is the sample catalog shown by storefronts running without
// a database.
func DefaultDataset() Dataset {
	base := func(id string) model.BaseModel {
		return model.BaseModel{ID: id, CreatedAt: seededAt, UpdatedAt: seededAt}
	}
	return Dataset{
		Products: []model.Product{{
			BaseModel:   base("fallback-1"),
			Name:        "Sample Product",
			Description: "A sample product when database is unavailable.",
			Price:       decimal.RequireFromString("19.99"),
			Category:    "Sample",
			Image:       "/placeholder.svg?height=300&width=300",
			Stock:       10,
		}},
		Categories: []model.Category{{
			BaseModel:   base("fallback-1"),
			Name:        "Sample",
			Description: "Sample products",
			Slug:        "sample",
			IsActive:    true,
		}},
		Users: []model.User{
			{BaseModel: base("fallback-1"), Name: "Admin User", Email: "admin@example.com", Role: model.RoleAdmin},
			{BaseModel: base("fallback-2"), Name: "Customer User", Email: "customer@example.com", Role: model.RoleCustomer},
		},
		Orders: []model.Order{{
			ID:            "fallback-1",
			UserID:        "fallback-2",
			Items:         []model.LineItem{{ProductID: "fallback-1", Quantity: 1}},
			Status:        model.OrderDelivered,
			Total:         decimal.RequireFromString("19.99"),
			CreatedAt:     seededAt,
			PaymentMethod: model.PaymentCashOnDelivery,
			PaymentStatus: model.PaymentCompleted,
		}},
	}
}
