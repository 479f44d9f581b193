package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"candleshop-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type snapshotDocument struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStorage keeps one document per key, with the key as _id.
type MongoStorage struct {
	coll          *mongo.Collection
	maxEntryBytes int64
}

func NewMongoStorage(coll *mongo.Collection, maxEntryBytes int64) *MongoStorage {
	return &MongoStorage{coll: coll, maxEntryBytes: maxEntryBytes}
}

// NewMongoClient connects and pings the deployment at uri.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

func (s *MongoStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var doc snapshotDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find snapshot %s: %w", key, err)
	}
	return doc.Data, nil
}

func (s *MongoStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := checkEntrySize(data, s.maxEntryBytes); err != nil {
		return err
	}
	doc := snapshotDocument{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace snapshot %s: %w", key, err)
	}
	return nil
}

func (s *MongoStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}
