// internal/app/store/preferences/preferencestore.go
package preferencestore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection holding UI preferences.
const CollectionName = "ui_preferences"

// ErrNotFound is returned by a Backend when no value is stored for the key.
var ErrNotFound = errors.New("preference not found")

// Backend persists raw preference documents, one per (browser, key).
type Backend interface {
	Load(ctx context.Context, browserID, key string) ([]byte, error)
	Save(ctx context.Context, browserID, key string, raw []byte) error
}

// record is the stored document. Value holds the JSON encoding of the preference
// so that the shape can change between versions without a migration.
type record struct {
	BrowserID string    `bson:"browser_id"`
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store is the MongoDB Backend.
type Store struct {
	c *mongo.Collection
}

// New creates a new preference store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// Load returns the stored JSON for the key.
func (s *Store) Load(ctx context.Context, browserID, key string) ([]byte, error) {
	var rec record
	err := s.c.FindOne(ctx, bson.M{"browser_id": browserID, "key": key}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Value), nil
}

// Save overwrites the stored JSON for the key, creating it on first use.
func (s *Store) Save(ctx context.Context, browserID, key string, raw []byte) error {
	filter := bson.M{"browser_id": browserID, "key": key}
	update := bson.M{
		"$set": bson.M{
			"value":      string(raw),
			"updated_at": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"browser_id": browserID,
			"key":        key,
		},
	}
	_, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
