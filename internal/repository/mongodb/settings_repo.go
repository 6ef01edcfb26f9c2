package mongodb

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glamstore/internal/model"
)

type settingsRepo struct {
	coll *mongo.Collection
}

func (r *settingsRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	doc, err := findOne(ctx, r.coll, bson.M{"key": key})
	if err != nil {
		return nil, translate(err, "find setting")
	}
	setting, err := settingFromDoc(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "decode setting %s", key)
	}
	return &setting, nil
}

func (r *settingsRepo) Put(ctx context.Context, setting *model.Setting) error {
	value, err := settingValue(setting)
	if err != nil {
		return errors.Wrapf(err, "encode setting %s", setting.Key)
	}
	_, err = r.coll.UpdateOne(ctx,
		bson.M{"key": setting.Key},
		bson.M{"$set": bson.M{
			"key":       setting.Key,
			"value":     value,
			"updatedBy": setting.UpdatedBy,
			"updatedAt": setting.UpdatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return translate(err, "put setting")
}
