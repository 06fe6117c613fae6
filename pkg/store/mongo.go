package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mgrundel/timelane/pkg/errors"
	"github.com/mgrundel/timelane/pkg/schedule"
	"github.com/mgrundel/timelane/pkg/snapshot"
)

// Default MongoDB locations for the snapshot document.
const (
	DefaultMongoDatabase   = "timelane"
	DefaultMongoCollection = "snapshots"

	// mongoSnapshotID is the fixed _id of the single snapshot document.
	mongoSnapshotID = "current"
)

// MongoConfig configures a MongoDB-backed store.
type MongoConfig struct {
	// URI is the connection string, e.g. mongodb://localhost:27017.
	URI string
	// Database and Collection default to "timelane" / "snapshots".
	Database   string
	Collection string
}

// MongoStore persists the schedule set as one document in a MongoDB
// collection, replaced atomically on every save.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoDocument struct {
	ID       string            `bson:"_id"`
	Snapshot snapshot.Document `bson:"snapshot"`
}

// NewMongoStore connects to MongoDB and returns a store over the
// configured collection. The connection is verified with a ping before
// the store is returned.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeStore, "mongo uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongo")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Load(ctx context.Context) (*schedule.Manager, error) {
	var doc mongoDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": mongoSnapshotID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return schedule.NewManager(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load snapshot")
	}

	m, err := snapshot.Restore(doc.Snapshot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "restore snapshot")
	}
	return m, nil
}

func (s *MongoStore) Save(ctx context.Context, m *schedule.Manager) error {
	doc := mongoDocument{ID: mongoSnapshotID, Snapshot: snapshot.Capture(m)}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": mongoSnapshotID},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save snapshot")
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "disconnect mongo")
	}
	return nil
}

var _ Store = (*MongoStore)(nil)
