// Package querylog persists served queries to MongoDB for offline analysis.
package querylog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "query_logs"

// Store writes query-log documents. It sits off the critical path: callers
// treat Save errors as non-fatal.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewStore connects to MongoDB and pings it so a bad URI fails at startup
// rather than on the first request.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Store{
		client: client,
		coll:   client.Database(dbName).Collection(collectionName),
	}, nil
}

// Save inserts one query-log document.
func (s *Store) Save(ctx context.Context, query string, attrs any, countResults int) error {
	_, err := s.coll.InsertOne(ctx, bson.M{
		"query":         query,
		"attrs":         attrs,
		"count_results": countResults,
		"created_at":    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert query log: %w", err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
