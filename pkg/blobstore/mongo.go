package blobstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBackend stores each blob as a single document keyed by name. Keeping
// one document per collection preserves the whole-collection
// read-modify-write semantics of the file layout on a real storage engine.
type MongoBackend struct {
	collection *mongo.Collection
}

type blobDoc struct {
	Name string `bson:"_id"`
	Data []byte `bson:"data"`
}

func NewMongoBackend(db *mongo.Database, collection string) *MongoBackend {
	return &MongoBackend{collection: db.Collection(collection)}
}

func (b *MongoBackend) Read(ctx context.Context, name string) ([]byte, error) {
	var doc blobDoc
	err := b.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", name, err)
	}
	return doc.Data, nil
}

func (b *MongoBackend) Write(ctx context.Context, name string, data []byte) error {
	_, err := b.collection.ReplaceOne(ctx,
		bson.M{"_id": name},
		blobDoc{Name: name, Data: data},
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("write blob %s: %w", name, err)
	}
	return nil
}

func (b *MongoBackend) Remove(ctx context.Context, name string) error {
	if _, err := b.collection.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("remove blob %s: %w", name, err)
	}
	return nil
}

func (b *MongoBackend) Exists(ctx context.Context, name string) (bool, error) {
	n, err := b.collection.CountDocuments(ctx, bson.M{"_id": name})
	if err != nil {
		return false, fmt.Errorf("stat blob %s: %w", name, err)
	}
	return n > 0, nil
}
