package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/structify/scrapechat/internal/session"
)

// DefaultPartitionField keys the upsert when no partition field is
// configured.
const DefaultPartitionField = "session_id"

// Mongo persists sessions to a MongoDB (or wire-compatible document store)
// collection, one record per session keyed by the partition field.
type Mongo struct {
	client         *mongo.Client
	collection     *mongo.Collection
	partitionField string
}

// pingTimeout bounds the startup reachability check.
const pingTimeout = 5 * time.Second

// NewMongo connects to the document store and binds the target collection.
// The store is pinged before use: a bad URI surfaces here rather than as a
// downgraded warning on the first save.
func NewMongo(ctx context.Context, uri, database, collection, partitionField string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect document store: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping document store: %w", err)
	}
	if partitionField == "" {
		partitionField = DefaultPartitionField
	}
	return &Mongo{
		client:         client,
		collection:     client.Database(database).Collection(collection),
		partitionField: partitionField,
	}, nil
}

// SaveSession upserts the session's full transcript. Each save writes a new
// record identifier; the partition field keeps one document per session.
func (m *Mongo) SaveSession(ctx context.Context, s *session.Session) error {
	rec := Record{ID: uuid.NewString(), SessionID: s.ID, Chat: s.Transcript()}
	filter := bson.M{m.partitionField: s.ID}
	_, err := m.collection.ReplaceOne(ctx, filter, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", s.ID, err)
	}
	return nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
