package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/netplot/pkg/report"
)

const (
	defaultDatabase   = "netplot"
	defaultCollection = "runs"
)

// MongoStore persists run documents to a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at the given URL and verifies the
// connection with a ping.
func NewMongoStore(ctx context.Context, url string) (Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(defaultDatabase).Collection(defaultCollection),
	}, nil
}

// SaveRun inserts a run document.
func (s *MongoStore) SaveRun(ctx context.Context, doc report.Document) error {
	_, err := s.coll.InsertOne(ctx, doc)
	return err
}

// LatestRun returns the most recent run for the given input name.
func (s *MongoStore) LatestRun(ctx context.Context, input string) (report.Document, bool, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var doc report.Document
	err := s.coll.FindOne(ctx, bson.M{"input": input}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return report.Document{}, false, nil
	}
	if err != nil {
		return report.Document{}, false, err
	}
	return doc, true, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
