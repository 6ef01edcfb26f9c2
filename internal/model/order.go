package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
)

// OrderStatuses lists the lifecycle in order.
var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentPayPal         PaymentMethod = "paypal"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// LineItem is one (product, quantity) pair of an order. Immutable once the
// order exists.
type LineItem struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	OrderID   string `gorm:"type:uuid;index;not null" json:"-"`
	ProductID string `gorm:"type:varchar(64);index;not null" json:"product_id" validate:"required"`
	Quantity  int    `gorm:"not null" json:"quantity"`
}

func (LineItem) TableName() string {
	return "order_items"
}

type ShippingAddress struct {
	FullName      string `json:"full_name" validate:"required"`
	StreetAddress string `json:"street_address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code" validate:"required"`
	Country       string `json:"country" validate:"required"`
	Phone         string `json:"phone"`
}

type Order struct {
	ID              string            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          string            `gorm:"type:varchar(255);index;not null" json:"user_id"`
	Items           []LineItem        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products"`
	Status          OrderStatus       `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Total           decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"total"`
	CreatedAt       time.Time         `json:"created_at"`
	ShippingAddress *ShippingAddress  `gorm:"type:jsonb;serializer:json" json:"shipping_address,omitempty"`
	PaymentMethod   PaymentMethod     `gorm:"type:varchar(30)" json:"payment_method,omitempty"`
	PaymentStatus   PaymentStatus     `gorm:"type:varchar(20)" json:"payment_status,omitempty"`
	PaymentDetails  datatypes.JSONMap `gorm:"type:jsonb" json:"payment_details,omitempty"`

	// Owner resolved across identifier spaces; never persisted.
	User *User `gorm:"-" json:"user,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
