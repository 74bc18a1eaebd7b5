package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// CollectionName is the Mongo collection holding cart snapshots.
const CollectionName = "carts"

type cartDocument struct {
	Key       string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps one document per cart, keyed by the cart key.
type MongoStore struct {
	collection *mongo.Collection
	clock      clock.Clock
}

// NewMongoStore creates a MongoStore over db.
func NewMongoStore(db *mongo.Database, clk clock.Clock) *MongoStore {
	return &MongoStore{
		collection: db.Collection(CollectionName),
		clock:      clk,
	}
}

var _ contracts.SnapshotStore = (*MongoStore)(nil)

// ConnectMongo opens a client and verifies the server is reachable.
func ConnectMongo(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// CreateIndexes adds a TTL index on updated_at. A ttl of zero skips it.
func (s *MongoStore) CreateIndexes(ctx context.Context, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(ttl / time.Second)),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Load(ctx context.Context, key string) ([]byte, error) {
	var doc cartDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, contracts.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart snapshot: %w", err)
	}
	return []byte(doc.Payload), nil
}

func (s *MongoStore) Save(ctx context.Context, key string, payload []byte) error {
	update := bson.M{"$set": bson.M{
		"payload":    string(payload),
		"updated_at": s.clock.Now(),
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := s.collection.UpdateOne(ctx, bson.M{"_id": key}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert cart snapshot: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}
