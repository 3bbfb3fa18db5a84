package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
)

// CollectionName is the MongoDB collection holding token documents.
const CollectionName = "tokens"

// MongoRepository stores tokens as documents in a MongoDB collection.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// EnsureIndexes creates the unique index on the raw token and an index on
// expires_at used by DeleteExpired.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("token_unique"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("expires_at"),
		},
	})
	if err != nil {
		return fmt.Errorf("create token indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Insert(ctx context.Context, t *models.Token) error {
	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrDuplicateToken
		}
		return fmt.Errorf("mongo insert: %w", err)
	}
	return nil
}

func (r *MongoRepository) FindByToken(ctx context.Context, raw string) (*models.Token, error) {
	var t models.Token
	err := r.coll.FindOne(ctx, bson.D{{Key: "token", Value: raw}}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	return &t, nil
}

func (r *MongoRepository) DeleteByToken(ctx context.Context, raw string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "token", Value: raw}})
	if err != nil {
		return 0, fmt.Errorf("mongo delete: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MongoRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lte", Value: now}}}})
	if err != nil {
		return 0, fmt.Errorf("mongo delete expired: %w", err)
	}
	return res.DeletedCount, nil
}
