package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glamstore/internal/model"
	"glamstore/internal/repository"
)

type orderRepo struct {
	coll *mongo.Collection
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func (r *orderRepo) FindAll(ctx context.Context) ([]model.Order, error) {
	orders, err := findMany(ctx, r.coll, bson.M{}, orderFromDoc, options.Find().SetSort(newestFirst))
	return orders, translate(err, "find orders")
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	doc, err := findOne(ctx, r.coll, bson.M{"_id": oid})
	if err != nil {
		return nil, translate(err, "find order")
	}
	order := orderFromDoc(doc)
	return &order, nil
}

func (r *orderRepo) FindByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := findMany(ctx, r.coll, bson.M{"userId": userID}, orderFromDoc, options.Find().SetSort(newestFirst))
	return orders, translate(err, "find orders by user")
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	oid := primitive.NewObjectID()
	order.ID = oid.Hex()
	order.CreatedAt = now()

	doc := orderDoc(order)
	doc["_id"] = oid
	_, err := r.coll.InsertOne(ctx, doc)
	return translate(err, "create order")
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	var doc bson.M
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status), "updatedAt": now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, translate(err, "update order status")
	}
	order := orderFromDoc(doc)
	return &order, nil
}

func (r *orderRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, "order")
}
