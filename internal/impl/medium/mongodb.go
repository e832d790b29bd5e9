package medium

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta: bundle.Meta{
			Title: "mongodb",
			Args: docs.ArgSpecs{
				{Dest: "mongodb_uri", Type: docs.FieldString, Description: "mongo connection URI", Required: true},
				{Dest: "mongodb_database", Type: docs.FieldString, Description: "target database", Required: true},
				{Dest: "mongodb_collection", Type: docs.FieldString, Description: "target collection", Required: true},
			},
		},
		AutoSelectFlag: "mongodb_uri",
		Constructor:    newMongoDB,
	}))
}

type mongoDBMedium struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func newMongoDB(attrs map[string]any) (medium.Type, error) {
	uri, _ := attrs["uri"].(string)
	database, _ := attrs["database"].(string)
	collection, _ := attrs["collection"].(string)

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	return &mongoDBMedium{client: client, coll: client.Database(database).Collection(collection)}, nil
}

func (m *mongoDBMedium) Write(ctx context.Context, b batch.Batch) error {
	if b.Empty() {
		return nil
	}
	doc := bson.D{
		{Key: "payload", Value: b.Payload},
		{Key: "count", Value: b.Count},
	}
	if _, err := m.coll.InsertOne(ctx, doc); err != nil {
		return &medium.WriteFailed{Cause: err, Retriable: true}
	}
	return nil
}

func (m *mongoDBMedium) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
