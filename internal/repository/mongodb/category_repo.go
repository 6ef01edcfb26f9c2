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

type categoryRepo struct {
	coll *mongo.Collection
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]model.Category, error) {
	categories, err := findMany(ctx, r.coll, bson.M{}, categoryFromDoc,
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	return categories, translate(err, "find categories")
}

func (r *categoryRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	doc, err := findOne(ctx, r.coll, bson.M{"_id": oid})
	if err != nil {
		return nil, translate(err, "find category")
	}
	category := categoryFromDoc(doc)
	return &category, nil
}

func (r *categoryRepo) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	doc, err := findOne(ctx, r.coll, bson.M{"slug": slug})
	if err != nil {
		return nil, translate(err, "find category by slug")
	}
	category := categoryFromDoc(doc)
	return &category, nil
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	oid := primitive.NewObjectID()
	category.ID = oid.Hex()
	category.CreatedAt = now()
	category.UpdatedAt = category.CreatedAt

	doc := categoryDoc(category)
	doc["_id"] = oid
	_, err := r.coll.InsertOne(ctx, doc)
	return translate(err, "create category")
}

func (r *categoryRepo) Update(ctx context.Context, category *model.Category) error {
	category.UpdatedAt = now()
	return replaceByID(ctx, r.coll, category.ID, categoryDoc(category), "category")
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, "category")
}
