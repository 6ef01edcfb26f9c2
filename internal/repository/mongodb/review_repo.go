package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glamstore/internal/model"
)

type reviewRepo struct {
	coll *mongo.Collection
}

func (r *reviewRepo) FindByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	reviews, err := findMany(ctx, r.coll, bson.M{"productId": productID}, reviewFromDoc,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	return reviews, translate(err, "find reviews")
}

func (r *reviewRepo) Upsert(ctx context.Context, review *model.Review) error {
	ts := now()
	var doc bson.M
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"productId": review.ProductID, "userId": review.UserID},
		bson.M{
			"$set": bson.M{
				"userName":  review.UserName,
				"rating":    review.Rating,
				"comment":   review.Comment,
				"verified":  review.Verified,
				"updatedAt": ts,
			},
			"$setOnInsert": bson.M{"createdAt": ts},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return translate(err, "upsert review")
	}
	*review = reviewFromDoc(doc)
	return nil
}
