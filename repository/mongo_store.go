package repository

import (
	"context"
	"fmt"

	"github.com/samandartukhtayev/migration-fixtures/config"
	"github.com/samandartukhtayev/migration-fixtures/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoUserStore stores users in a MongoDB collection
type MongoUserStore struct {
	target     Target
	collection *mongo.Collection
}

var _ UserStore = (*MongoUserStore)(nil)

// ConnectMongo opens a client and pings the server once.
// A failed ping is reported as ErrConnection; there are no retries.
func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(cfg.ConnectionString())
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w: %w", ErrConnection, err)
	}

	return client, nil
}

// NewMongoUserStore creates a store for target using an already connected client
func NewMongoUserStore(client *mongo.Client, target Target) *MongoUserStore {
	return &MongoUserStore{
		target:     target,
		collection: client.Database(target.Database).Collection(target.Collection),
	}
}

// InsertMany sends all users in one insertMany command
func (s *MongoUserStore) InsertMany(ctx context.Context, users []models.User) error {
	_, err := s.collection.InsertMany(ctx, users)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to insert users into %s: %w: %w", s.target, ErrDuplicateKey, err)
		}
		return fmt.Errorf("failed to insert users into %s: %w", s.target, err)
	}

	return nil
}

// CountDocuments counts with an empty filter, so documents not written by this run are included
func (s *MongoUserStore) CountDocuments(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users in %s: %w", s.target, err)
	}

	return count, nil
}

// FindProjected runs an unsorted find with the report projection and decodes one document at a time
func (s *MongoUserStore) FindProjected(ctx context.Context, fn func(models.UserProjection) error) error {
	opts := options.Find().SetProjection(projection())

	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return fmt.Errorf("failed to query users in %s: %w", s.target, err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc models.UserProjection
		if err := cursor.Decode(&doc); err != nil {
			return fmt.Errorf("failed to decode user from %s: %w", s.target, err)
		}
		if err := fn(doc); err != nil {
			return err
		}
	}

	if err := cursor.Err(); err != nil {
		return fmt.Errorf("error iterating users in %s: %w", s.target, err)
	}

	return nil
}

// projection keeps the report fields and suppresses _id, which MongoDB returns unless told otherwise
func projection() bson.D {
	proj := bson.D{{Key: "_id", Value: 0}}
	for _, field := range models.ProjectionFields {
		proj = append(proj, bson.E{Key: field, Value: 1})
	}
	return proj
}
