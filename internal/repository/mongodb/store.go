package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glamstore/internal/repository"
)

// Collection names match the ones the storefront has always written to.
const (
	productsCollection   = "products"
	categoriesCollection = "categories"
	ordersCollection     = "orders"
	usersCollection      = "users"
	reviewsCollection    = "reviews"
	settingsCollection   = "settings"
)

// Store is the document backend of the data-access facade.
type Store struct {
	client     *mongo.Client
	db         *mongo.Database
	products   repository.ProductRepository
	orders     repository.OrderRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	reviews    repository.ReviewRepository
	settings   repository.SettingsRepository
}

func NewStore(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:     client,
		db:         db,
		products:   &productRepo{db.Collection(productsCollection)},
		orders:     &orderRepo{db.Collection(ordersCollection)},
		users:      &userRepo{db.Collection(usersCollection)},
		categories: &categoryRepo{db.Collection(categoriesCollection)},
		reviews:    &reviewRepo{db.Collection(reviewsCollection)},
		settings:   &settingsRepo{db.Collection(settingsCollection)},
	}
}

// EnsureIndexes creates the unique indexes the repositories rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{
				Keys: bson.D{{Key: "clerkId", Value: 1}},
				Options: options.Index().SetUnique(true).
					SetPartialFilterExpression(bson.M{"clerkId": bson.M{"$type": "string"}}),
			},
		},
		categoriesCollection: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		reviewsCollection: {
			{Keys: bson.D{{Key: "productId", Value: 1}, {Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		settingsCollection: {
			{Keys: bson.D{{Key: "key", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "create indexes on %s", name)
		}
	}
	return nil
}

func (s *Store) Name() string { return "mongodb" }

func (s *Store) Products() repository.ProductRepository { return s.products }
func (s *Store) Orders() repository.OrderRepository { return s.orders }
func (s *Store) Users() repository.UserRepository { return s.users }
func (s *Store) Categories() repository.CategoryRepository { return s.categories }
func (s *Store) Reviews() repository.ReviewRepository { return s.reviews }
func (s *Store) Settings() repository.SettingsRepository { return s.settings }

func (s *Store) Ping(ctx context.Context) error {
	return errors.Wrap(s.client.Ping(ctx, nil), "ping mongodb")
}

func (s *Store) Close(ctx context.Context) error {
	return errors.Wrap(s.client.Disconnect(ctx), "disconnect mongodb")
}

func translate(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return errors.Wrap(repository.ErrNotFound, msg)
	case mongo.IsDuplicateKeyError(err):
		return errors.Wrap(repository.ErrConflict, msg)
	default:
		return errors.Wrap(err, msg)
	}
}

func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := objectID(id); ok {
			out = append(out, oid)
		}
	}
	return out
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// findMany runs a query and converts every document with conv.
func findMany[T any](ctx context.Context, coll *mongo.Collection, filter any, conv func(bson.M) T, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		out = append(out, conv(doc))
	}
	return out, nil
}

func findOne(ctx context.Context, coll *mongo.Collection, filter any) (bson.M, error) {
	var doc bson.M
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// setFields builds an update that overwrites doc but keeps the creation
// timestamp.
func setFields(doc bson.M) bson.M {
	delete(doc, "createdAt")
	delete(doc, "createdBy")
	return bson.M{"$set": doc}
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id, what string) error {
	oid, ok := objectID(id)
	if !ok {
		return repository.ErrNotFound
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translate(err, "delete "+what)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func replaceByID(ctx context.Context, coll *mongo.Collection, id string, doc bson.M, what string) error {
	oid, ok := objectID(id)
	if !ok {
		return repository.ErrNotFound
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, setFields(doc))
	if err != nil {
		return translate(err, "update "+what)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
