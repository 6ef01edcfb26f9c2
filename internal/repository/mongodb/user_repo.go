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

type userRepo struct {
	coll *mongo.Collection
}

// IsLocalID reports whether id is an ObjectID hex string.
func (r *userRepo) IsLocalID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func (r *userRepo) FindAll(ctx context.Context) ([]model.User, error) {
	users, err := findMany(ctx, r.coll, bson.M{}, userFromDoc,
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	return users, translate(err, "find users")
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	doc, err := findOne(ctx, r.coll, bson.M{"_id": oid})
	if err != nil {
		return nil, translate(err, "find user")
	}
	user := userFromDoc(doc)
	return &user, nil
}

func (r *userRepo) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []model.User{}, nil
	}
	users, err := findMany(ctx, r.coll, bson.M{"_id": bson.M{"$in": oids}}, userFromDoc)
	return users, translate(err, "find users by id")
}

func (r *userRepo) FindByExternalID(ctx context.Context, externalID string) ([]model.User, error) {
	// Two documents are enough to tell a match from an ambiguous one.
	users, err := findMany(ctx, r.coll, bson.M{"clerkId": externalID}, userFromDoc, options.Find().SetLimit(2))
	return users, translate(err, "find users by external id")
}

func (r *userRepo) FindAllByExternalIDs(ctx context.Context, externalIDs []string) ([]model.User, error) {
	if len(externalIDs) == 0 {
		return []model.User{}, nil
	}
	users, err := findMany(ctx, r.coll, bson.M{"clerkId": bson.M{"$in": externalIDs}}, userFromDoc)
	return users, translate(err, "find users by external ids")
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	doc, err := findOne(ctx, r.coll, bson.M{"email": email})
	if err != nil {
		return nil, translate(err, "find user by email")
	}
	user := userFromDoc(doc)
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	oid := primitive.NewObjectID()
	user.ID = oid.Hex()
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt

	doc := userDoc(user)
	doc["_id"] = oid
	_, err := r.coll.InsertOne(ctx, doc)
	return translate(err, "create user")
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	oid, ok := objectID(user.ID)
	if !ok {
		return repository.ErrNotFound
	}
	user.UpdatedAt = now()
	doc := userDoc(user)
	delete(doc, "createdAt")
	delete(doc, "createdBy")

	update := bson.M{"$set": doc}
	if user.ExternalID == "" {
		update["$unset"] = bson.M{"clerkId": ""}
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return translate(err, "update user")
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	oid, ok := objectID(id)
	if !ok {
		return repository.ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"password": hashedPassword, "updatedAt": now()}})
	if err != nil {
		return translate(err, "update password")
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, "user")
}
