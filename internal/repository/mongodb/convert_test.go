package mongodb

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"glamstore/internal/model"
)

func TestProductFromDoc(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("full document", func(t *testing.T) {
		p := productFromDoc(bson.M{
			"_id":         oid,
			"name":        "Rose Serum",
			"description": "Hydrating",
			"price":       24.5,
			"category":    "Skincare",
			"image":       "https://gw/ipfs/abc",
			"imageCid":    "abc",
			"stock":       int32(7),
			"createdAt":   primitive.NewDateTimeFromTime(created),
		})

		assert.Equal(t, oid.Hex(), p.ID)
		assert.Equal(t, "Rose Serum", p.Name)
		assert.Equal(t, "24.5", p.Price.String())
		assert.Equal(t, "abc", p.ImageCID)
		assert.Equal(t, 7, p.Stock)
		assert.Equal(t, created, p.CreatedAt)
	})

	t.Run("missing fields default", func(t *testing.T) {
		p := productFromDoc(bson.M{"_id": oid})

		assert.Equal(t, oid.Hex(), p.ID)
		assert.Empty(t, p.Name)
		assert.True(t, p.Price.IsZero())
		assert.Zero(t, p.Stock)
		assert.True(t, p.CreatedAt.IsZero())
	})

	t.Run("loosely typed numbers", func(t *testing.T) {
		p := productFromDoc(bson.M{"price": "12.99", "stock": int64(3)})
		assert.Equal(t, "12.99", p.Price.String())
		assert.Equal(t, 3, p.Stock)

		d, err := primitive.ParseDecimal128("8.75")
		require.NoError(t, err)
		assert.Equal(t, "8.75", productFromDoc(bson.M{"price": d}).Price.String())
	})
}

func TestOrderFromDoc(t *testing.T) {
	oid := primitive.NewObjectID()

	t.Run("nested documents in either form", func(t *testing.T) {
		o := orderFromDoc(bson.M{
			"_id":    oid,
			"userId": "user_abc",
			"products": bson.A{
				bson.M{"productId": "p1", "quantity": int32(2)},
				bson.D{{Key: "productId", Value: primitive.NilObjectID}, {Key: "quantity", Value: 1.0}},
				"garbage",
			},
			"status": "shipped",
			"total":  49.0,
			"shippingAddress": bson.D{
				{Key: "fullName", Value: "Ada"},
				{Key: "city", Value: "Paris"},
			},
			"paymentMethod":  "paypal",
			"paymentStatus":  "completed",
			"paymentDetails": bson.M{"id": "PAY-1", "payer": bson.M{"email": "a@b.c"}},
		})

		assert.Equal(t, oid.Hex(), o.ID)
		assert.Equal(t, "user_abc", o.UserID)
		require.Len(t, o.Items, 2)
		assert.Equal(t, model.LineItem{ProductID: "p1", Quantity: 2}, o.Items[0])
		assert.Equal(t, primitive.NilObjectID.Hex(), o.Items[1].ProductID)
		assert.Equal(t, model.OrderShipped, o.Status)
		assert.Equal(t, "49", o.Total.String())
		require.NotNil(t, o.ShippingAddress)
		assert.Equal(t, "Ada", o.ShippingAddress.FullName)
		assert.Equal(t, model.PaymentPayPal, o.PaymentMethod)
		assert.Equal(t, "PAY-1", o.PaymentDetails["id"])
		assert.Equal(t, map[string]any{"email": "a@b.c"}, o.PaymentDetails["payer"])
	})

	t.Run("missing fields default", func(t *testing.T) {
		o := orderFromDoc(bson.M{"status": "lost"})

		assert.NotNil(t, o.Items)
		assert.Empty(t, o.Items)
		assert.Equal(t, model.OrderPending, o.Status)
		assert.Nil(t, o.ShippingAddress)
		assert.Nil(t, o.PaymentDetails)
	})
}

func TestOrderDocRoundTrip(t *testing.T) {
	in := model.Order{
		UserID: "m1",
		Items:  []model.LineItem{{ProductID: "p1", Quantity: 3}},
		Status: model.OrderPending,
		ShippingAddress: &model.ShippingAddress{
			FullName: "Ada", StreetAddress: "1 Rue", City: "Paris", PostalCode: "75001", Country: "FR",
		},
		PaymentMethod: model.PaymentCashOnDelivery,
		PaymentStatus: model.PaymentPending,
	}

	out := orderFromDoc(orderDoc(&in))

	assert.Equal(t, in.UserID, out.UserID)
	assert.Equal(t, in.Items, out.Items)
	assert.Equal(t, in.ShippingAddress, out.ShippingAddress)
	assert.Equal(t, in.PaymentMethod, out.PaymentMethod)
}

func TestUserFromDoc(t *testing.T) {
	u := userFromDoc(bson.M{"name": "Eve", "email": "eve@example.com", "role": "superuser", "clerkId": "user_eve"})

	assert.Equal(t, model.RoleCustomer, u.Role)
	assert.Equal(t, "user_eve", u.ExternalID)

	admin := userFromDoc(bson.M{"role": "admin"})
	assert.True(t, admin.IsAdmin())
	assert.Empty(t, admin.ExternalID)
}

func TestUserDocOmitsEmptyExternalID(t *testing.T) {
	doc := userDoc(&model.User{Name: "Eve"})
	_, ok := doc["clerkId"]
	assert.False(t, ok)

	doc = userDoc(&model.User{Name: "Eve", ExternalID: "user_eve"})
	assert.Equal(t, "user_eve", doc["clerkId"])
}

func TestCategoryFromDoc(t *testing.T) {
	c := categoryFromDoc(bson.M{"name": "Makeup", "slug": "makeup", "isActive": true})

	assert.Equal(t, "Makeup", c.Name)
	assert.Equal(t, "makeup", c.Slug)
	assert.True(t, c.IsActive)
	assert.False(t, categoryFromDoc(bson.M{}).IsActive)
}

func TestSettingFromDocRenamesLegacyFields(t *testing.T) {
	setting, err := settingFromDoc(bson.M{
		"key": model.SettingFeaturedProducts,
		"value": bson.M{
			"featuredProductIds": bson.A{"a", "b"},
			"updatedBy":          "admin",
		},
		"updatedBy": "admin",
	})
	require.NoError(t, err)

	var featured model.FeaturedProducts
	require.NoError(t, json.Unmarshal(setting.Value, &featured))
	assert.Equal(t, []string{"a", "b"}, featured.FeaturedProductIDs)
	assert.Equal(t, "admin", featured.UpdatedBy)
}

func TestSettingValueRoundTrip(t *testing.T) {
	raw, err := json.Marshal(model.FeaturedProducts{FeaturedProductIDs: []string{"x"}})
	require.NoError(t, err)

	value, err := settingValue(&model.Setting{Key: model.SettingFeaturedProducts, Value: raw})
	require.NoError(t, err)

	setting, err := settingFromDoc(bson.M{"key": model.SettingFeaturedProducts, "value": value})
	require.NoError(t, err)

	var featured model.FeaturedProducts
	require.NoError(t, json.Unmarshal(setting.Value, &featured))
	assert.Equal(t, []string{"x"}, featured.FeaturedProductIDs)
}

func TestSettingWithoutValue(t *testing.T) {
	setting, err := settingFromDoc(bson.M{"key": "carouselImages"})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(setting.Value))
}
