package mongodb

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"glamstore/internal/model"
)

// Documents written by earlier versions of the storefront are loosely typed:
// numbers may be int32, int64, double or strings, ids may be ObjectIDs or
// strings, and any field may be missing. The functions below read a raw
// document into a model value, defaulting whatever is absent.

func asMap(v any) (bson.M, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]any:
		return m, true
	case bson.D:
		out := make(bson.M, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	}
	return nil, false
}

func asSlice(v any) []any {
	switch s := v.(type) {
	case bson.A:
		return s
	case []any:
		return s
	case []string:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out
	}
	return nil
}

func idString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	}
	return ""
}

func str(doc bson.M, key string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	}
	return ""
}

func number(doc bson.M, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err == nil {
			return f
		}
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			return f
		}
	}
	return 0
}

func money(doc bson.M, key string) decimal.Decimal {
	if d, ok := doc[key].(primitive.Decimal128); ok {
		if parsed, err := decimal.NewFromString(d.String()); err == nil {
			return parsed
		}
	}
	return decimal.NewFromFloat(number(doc, key)).Round(2)
}

func integer(doc bson.M, key string) int {
	return int(number(doc, key))
}

func boolean(doc bson.M, key string) bool {
	b, _ := doc[key].(bool)
	return b
}

func timestamp(doc bson.M, key string) time.Time {
	switch v := doc[key].(type) {
	case primitive.DateTime:
		return v.Time().UTC()
	case time.Time:
		return v.UTC()
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func base(doc bson.M) model.BaseModel {
	return model.BaseModel{
		ID:        idString(doc["_id"]),
		CreatedAt: timestamp(doc, "createdAt"),
		UpdatedAt: timestamp(doc, "updatedAt"),
		CreatedBy: str(doc, "createdBy"),
		UpdatedBy: str(doc, "updatedBy"),
	}
}

func productFromDoc(doc bson.M) model.Product {
	return model.Product{
		BaseModel:   base(doc),
		Name:        str(doc, "name"),
		Description: str(doc, "description"),
		Price:       money(doc, "price"),
		Category:    str(doc, "category"),
		Image:       str(doc, "image"),
		ImageCID:    str(doc, "imageCid"),
		Stock:       integer(doc, "stock"),
	}
}

func productDoc(p *model.Product) bson.M {
	return bson.M{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.InexactFloat64(),
		"category":    p.Category,
		"image":       p.Image,
		"imageCid":    p.ImageCID,
		"stock":       p.Stock,
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
		"createdBy":   p.CreatedBy,
		"updatedBy":   p.UpdatedBy,
	}
}

func categoryFromDoc(doc bson.M) model.Category {
	return model.Category{
		BaseModel:   base(doc),
		Name:        str(doc, "name"),
		Description: str(doc, "description"),
		Slug:        str(doc, "slug"),
		IsActive:    boolean(doc, "isActive"),
	}
}

func categoryDoc(c *model.Category) bson.M {
	return bson.M{
		"name":        c.Name,
		"description": c.Description,
		"slug":        c.Slug,
		"isActive":    c.IsActive,
		"createdAt":   c.CreatedAt,
		"updatedAt":   c.UpdatedAt,
		"createdBy":   c.CreatedBy,
		"updatedBy":   c.UpdatedBy,
	}
}

func userFromDoc(doc bson.M) model.User {
	role := model.Role(str(doc, "role"))
	if !role.Valid() {
		role = model.RoleCustomer
	}
	return model.User{
		BaseModel:    base(doc),
		Name:         str(doc, "name"),
		Email:        str(doc, "email"),
		Role:         role,
		ExternalID:   str(doc, "clerkId"),
		PasswordHash: str(doc, "password"),
	}
}

// userDoc leaves clerkId out when empty so the sparse unique index only
// covers linked accounts.
func userDoc(u *model.User) bson.M {
	doc := bson.M{
		"name":      u.Name,
		"email":     u.Email,
		"role":      string(u.Role),
		"password":  u.PasswordHash,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
		"createdBy": u.CreatedBy,
		"updatedBy": u.UpdatedBy,
	}
	if u.ExternalID != "" {
		doc["clerkId"] = u.ExternalID
	}
	return doc
}

func orderFromDoc(doc bson.M) model.Order {
	order := model.Order{
		ID:            idString(doc["_id"]),
		UserID:        str(doc, "userId"),
		Items:         []model.LineItem{},
		Status:        model.OrderStatus(str(doc, "status")),
		Total:         money(doc, "total"),
		CreatedAt:     timestamp(doc, "createdAt"),
		PaymentMethod: model.PaymentMethod(str(doc, "paymentMethod")),
		PaymentStatus: model.PaymentStatus(str(doc, "paymentStatus")),
	}
	if !order.Status.Valid() {
		order.Status = model.OrderPending
	}
	for _, raw := range asSlice(doc["products"]) {
		item, ok := asMap(raw)
		if !ok {
			continue
		}
		order.Items = append(order.Items, model.LineItem{
			ProductID: str(item, "productId"),
			Quantity:  integer(item, "quantity"),
		})
	}
	if addr, ok := asMap(doc["shippingAddress"]); ok {
		order.ShippingAddress = &model.ShippingAddress{
			FullName:      str(addr, "fullName"),
			StreetAddress: str(addr, "streetAddress"),
			City:          str(addr, "city"),
			State:         str(addr, "state"),
			PostalCode:    str(addr, "postalCode"),
			Country:       str(addr, "country"),
			Phone:         str(addr, "phone"),
		}
	}
	if details, ok := asMap(doc["paymentDetails"]); ok {
		order.PaymentDetails = plainMap(details)
	}
	return order
}

func orderDoc(o *model.Order) bson.M {
	items := make(bson.A, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, bson.M{"productId": item.ProductID, "quantity": item.Quantity})
	}
	doc := bson.M{
		"userId":        o.UserID,
		"products":      items,
		"status":        string(o.Status),
		"total":         o.Total.InexactFloat64(),
		"createdAt":     o.CreatedAt,
		"paymentMethod": string(o.PaymentMethod),
		"paymentStatus": string(o.PaymentStatus),
	}
	if a := o.ShippingAddress; a != nil {
		doc["shippingAddress"] = bson.M{
			"fullName":      a.FullName,
			"streetAddress": a.StreetAddress,
			"city":          a.City,
			"state":         a.State,
			"postalCode":    a.PostalCode,
			"country":       a.Country,
			"phone":         a.Phone,
		}
	}
	if len(o.PaymentDetails) > 0 {
		doc["paymentDetails"] = bson.M(o.PaymentDetails)
	}
	return doc
}

func reviewFromDoc(doc bson.M) model.Review {
	return model.Review{
		BaseModel: base(doc),
		ProductID: str(doc, "productId"),
		UserID:    str(doc, "userId"),
		UserName:  str(doc, "userName"),
		Rating:    integer(doc, "rating"),
		Comment:   str(doc, "comment"),
		Verified:  boolean(doc, "verified"),
	}
}

// legacySettingKeys maps field names of settings saved by the previous
// storefront onto the current ones.
var legacySettingKeys = map[string]string{
	"featuredProductIds": "featured_product_ids",
	"updatedAt":          "updated_at",
	"updatedBy":          "updated_by",
}

func settingFromDoc(doc bson.M) (model.Setting, error) {
	setting := model.Setting{
		Key:       str(doc, "key"),
		UpdatedBy: str(doc, "updatedBy"),
		UpdatedAt: timestamp(doc, "updatedAt"),
	}
	value, ok := asMap(doc["value"])
	if !ok {
		setting.Value = []byte("{}")
		return setting, nil
	}
	renamed := make(bson.M, len(value))
	for k, v := range value {
		if current, ok := legacySettingKeys[k]; ok {
			if _, taken := value[current]; !taken {
				k = current
			}
		}
		renamed[k] = v
	}
	raw, err := bson.MarshalExtJSON(renamed, false, false)
	if err != nil {
		return setting, err
	}
	setting.Value = raw
	return setting, nil
}

func settingValue(s *model.Setting) (bson.M, error) {
	value := bson.M{}
	if len(s.Value) == 0 {
		return value, nil
	}
	if err := bson.UnmarshalExtJSON(s.Value, false, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// plainMap converts nested documents to map[string]any so they encode as
// ordinary JSON objects.
func plainMap(m bson.M) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v any) any {
	if m, ok := asMap(v); ok {
		return plainMap(m)
	}
	switch t := v.(type) {
	case bson.A:
		out := make([]any, len(t))
		for i := range t {
			out[i] = plainValue(t[i])
		}
		return out
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	}
	return v
}
