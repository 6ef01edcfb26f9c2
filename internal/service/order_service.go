package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"glamstore/internal/model"
	"glamstore/internal/repository"
	"glamstore/internal/ws"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest, by *Principal) (*model.Order, error)
	ListOrders(ctx context.Context, userID string) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, by *Principal) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string, by *Principal) error
	OrdersForUser(ctx context.Context, userID string) ([]model.Order, error)
}

type CreateOrderRequest struct {
	// UserID is honoured for admins only; everyone else orders as themselves.
	UserID          string                 `json:"user_id"`
	Items           []OrderItemRequest     `json:"products" validate:"required,min=1,dive"`
	ShippingAddress *model.ShippingAddress `json:"shipping_address"`
	PaymentMethod   model.PaymentMethod    `json:"payment_method" validate:"omitempty,oneof=paypal cash_on_delivery"`
	PaymentDetails  map[string]interface{} `json:"payment_details"`
}

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type orderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	reconciler *repository.Reconciler
	wsHub      Broadcaster
	log        logrus.FieldLogger
}

func NewOrderService(store repository.Store, reconciler *repository.Reconciler, hub Broadcaster, log logrus.FieldLogger) OrderService {
	return &orderService{
		orders:     store.Orders(),
		products:   store.Products(),
		reconciler: reconciler,
		wsHub:      broadcasterOrNop(hub),
		log:        log.WithField("service", "order"),
	}
}

// CreateOrder prices every line item from the catalog and stores a pending
// order. Non-positive quantities count as one.
func (s *orderService) CreateOrder(ctx context.Context, req *CreateOrderRequest, by *Principal) (*model.Order, error) {
	if by == nil {
		return nil, ErrForbidden
	}
	if len(req.Items) == 0 {
		return nil, invalid("Products array is required and cannot be empty")
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" || !by.IsAdmin() {
		userID = by.ID
	}

	order := &model.Order{
		UserID:          userID,
		Items:           make([]model.LineItem, 0, len(req.Items)),
		Status:          model.OrderPending,
		Total:           decimal.Zero,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   model.PaymentPending,
		PaymentDetails:  req.PaymentDetails,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = model.PaymentCashOnDelivery
	}

	prices := make(map[string]decimal.Decimal, len(req.Items))
	for _, item := range req.Items {
		productID := strings.TrimSpace(item.ProductID)
		price, ok := prices[productID]
		if !ok {
			product, err := s.products.FindByID(ctx, productID)
			if errors.Is(err, repository.ErrNotFound) {
				return nil, notFound("Product with ID %s not found", productID)
			}
			if err != nil {
				return nil, err
			}
			price = product.Price
			prices[productID] = price
		}

		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		order.Items = append(order.Items, model.LineItem{ProductID: productID, Quantity: quantity})
		order.Total = order.Total.Add(model.LineTotal(price, quantity))
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"order_id": order.ID, "user_id": order.UserID, "total": order.Total.String()}).Info("order created")
	s.wsHub.Publish(ws.Event{
		Type:    "order",
		Action:  "order_created",
		Data:    order,
		User:    by.actor(),
		Message: fmt.Sprintf("New order %s totalling %s", order.ID, order.Total.StringFixed(2)),
	})
	return order, nil
}

// ListOrders returns every order, or the history of userID when set, with
// owners attached.
func (s *orderService) ListOrders(ctx context.Context, userID string) ([]model.Order, error) {
	var (
		orders []model.Order
		err    error
	)
	if strings.TrimSpace(userID) != "" {
		orders, err = s.reconciler.OrdersForUser(ctx, userID)
	} else {
		orders, err = s.orders.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return s.reconciler.AttachUsers(ctx, orders), nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	attached := s.reconciler.AttachUsers(ctx, []model.Order{*order})
	return &attached[0], nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, by *Principal) (*model.Order, error) {
	if !status.Valid() {
		names := make([]string, len(model.OrderStatuses))
		for i, st := range model.OrderStatuses {
			names[i] = string(st)
		}
		return nil, invalid("Invalid status. Must be one of: " + strings.Join(names, ", "))
	}

	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    "order",
		Action:  "order_status_updated",
		Data:    map[string]string{"id": order.ID, "status": string(order.Status)},
		User:    by.actor(),
		Message: fmt.Sprintf("%s marked order %s as %s", nameOf(by), order.ID, order.Status),
	})
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id string, by *Principal) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.wsHub.Publish(ws.Event{Type: "order", Action: "order_deleted", Data: map[string]string{"id": id}, User: by.actor()})
	return nil
}

func (s *orderService) OrdersForUser(ctx context.Context, userID string) ([]model.Order, error) {
	return s.reconciler.OrdersForUser(ctx, userID)
}
