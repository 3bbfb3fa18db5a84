package repomanager

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/tokens"
)

// MongoRepositoryManager serves the MongoDB backend. Each repository call
// is an atomic single-document operation. WithinTx does not open a session:
// fn runs against the plain repository and earlier writes are not undone
// when a later one fails, so callers order their writes accordingly.
type MongoRepositoryManager struct {
	client *mongo.Client
	repo   *tokens.MongoRepository
}

// NewMongoManager wraps a connected client.
func NewMongoManager(client *mongo.Client, database string) *MongoRepositoryManager {
	coll := client.Database(database).Collection(tokens.CollectionName)
	return &MongoRepositoryManager{client: client, repo: tokens.NewMongoRepository(coll)}
}

// OpenMongo connects to uri and verifies the connection.
func OpenMongo(ctx context.Context, uri, database string) (*MongoRepositoryManager, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return NewMongoManager(client, database), nil
}

func (m *MongoRepositoryManager) Tokens() tokens.Repository {
	return m.repo
}

func (m *MongoRepositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repo tokens.Repository) error) error {
	return fn(ctx, m.repo)
}

// RunMigrations creates the collection indexes.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	return m.repo.EnsureIndexes(ctx)
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
