package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoConfig represents the configuration for the audit collection.
type MongoConfig struct {
	ConnectionURL  string        `env:"AUDIT_MONGODB_URL,required"`
	Database       string        `env:"AUDIT_MONGODB_DATABASE" envDefault:"audit"`
	Collection     string        `env:"AUDIT_MONGODB_COLLECTION" envDefault:"events"`
	ConnectTimeout time.Duration `env:"AUDIT_MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	RetryAttempts  int           `env:"AUDIT_MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"AUDIT_MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

// ConnectMongo creates a mongo client and verifies connectivity.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	for range attempts {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout).
				SetRetryWrites(true),
		)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				return client, nil
			}
		}
		time.Sleep(cfg.RetryInterval)
	}
	return nil, ErrStorageUnavailable
}

// MongoStorage appends events to a MongoDB collection. The collection is
// treated as write-once: documents are inserted and queried, never updated.
type MongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage creates a storage over the configured collection.
func NewMongoStorage(client *mongo.Client, cfg MongoConfig) *MongoStorage {
	if client == nil {
		panic("audit: mongo client cannot be nil")
	}
	return &MongoStorage{coll: client.Database(cfg.Database).Collection(cfg.Collection)}
}

func (s *MongoStorage) Store(ctx context.Context, e Event) error {
	if e.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidEvent)
	}
	if _, err := s.coll.InsertOne(ctx, e); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}

func (s *MongoStorage) Query(ctx context.Context, c Criteria) ([]Event, error) {
	filter := bson.M{}
	if c.Type != "" {
		filter["type"] = string(c.Type)
	}
	if c.PrincipalID != "" {
		filter["principal_id"] = c.PrincipalID
	}
	if c.ResourceType != "" {
		filter["resource_type"] = c.ResourceType
	}
	if c.ResourceID != "" {
		filter["resource_id"] = c.ResourceID
	}
	if !c.From.IsZero() || !c.To.IsZero() {
		created := bson.M{}
		if !c.From.IsZero() {
			created["$gte"] = c.From
		}
		if !c.To.IsZero() {
			created["$lte"] = c.To
		}
		filter["created_at"] = created
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if c.Limit > 0 {
		opts = opts.SetLimit(int64(c.Limit))
	}

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Join(ErrStorageUnavailable, err)
	}
	defer cursor.Close(ctx)

	var events []Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, errors.Join(ErrStorageUnavailable, err)
	}
	return events, nil
}
