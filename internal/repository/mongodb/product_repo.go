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

type productRepo struct {
	coll *mongo.Collection
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	products, err := findMany(ctx, r.coll, bson.M{}, productFromDoc,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	return products, translate(err, "find products")
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	doc, err := findOne(ctx, r.coll, bson.M{"_id": oid})
	if err != nil {
		return nil, translate(err, "find product")
	}
	product := productFromDoc(doc)
	return &product, nil
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	oid := primitive.NewObjectID()
	product.ID = oid.Hex()
	product.CreatedAt = now()
	product.UpdatedAt = product.CreatedAt

	doc := productDoc(product)
	doc["_id"] = oid
	_, err := r.coll.InsertOne(ctx, doc)
	return translate(err, "create product")
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	product.UpdatedAt = now()
	return replaceByID(ctx, r.coll, product.ID, productDoc(product), "product")
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, "product")
}
