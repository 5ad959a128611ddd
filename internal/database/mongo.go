package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RouqX7/AthleteConnect/internal/pagination"
	"github.com/RouqX7/AthleteConnect/internal/utils"
)

// MongoDB is the default document-store provider.
type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoDB(ctx context.Context, uri, name string) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Database("admin").RunCommand(connectCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoDB{
		client: client,
		db:     client.Database(name),
	}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// MongoCollection adapts one Mongo collection to the Store contract.
// Documents are keyed by the entity id in _id.
type MongoCollection[T any] struct {
	coll *mongo.Collection
	kind string
}

func NewMongoCollection[T any](m *MongoDB, name, kind string) *MongoCollection[T] {
	return &MongoCollection[T]{
		coll: m.db.Collection(name),
		kind: kind,
	}
}

func (c *MongoCollection[T]) Add(ctx context.Context, id string, record *T) (string, error) {
	if id == "" {
		return "", utils.NewInvalidInputError("missing identifier for " + c.kind)
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": id}
	update := bson.M{"$set": record}

	if _, err := c.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return "", utils.NewAppError(utils.ErrDatabase, "failed to save "+c.kind, err)
	}
	return id, nil
}

func (c *MongoCollection[T]) Get(ctx context.Context, id string) (*T, error) {
	var record T
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError(c.kind)
	}
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to fetch "+c.kind, err)
	}
	return &record, nil
}

func (c *MongoCollection[T]) GetAll(ctx context.Context) ([]*T, error) {
	return c.find(ctx, bson.M{}, nil)
}

func (c *MongoCollection[T]) GetByField(ctx context.Context, field, value string) ([]*T, error) {
	if err := checkFieldName(field); err != nil {
		return nil, err
	}
	return c.find(ctx, bson.M{field: value}, nil)
}

func (c *MongoCollection[T]) Update(ctx context.Context, id string, partial map[string]any) error {
	set := bson.M{}
	for k, v := range partial {
		set[k] = v
	}

	result, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to update "+c.kind, err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError(c.kind)
	}
	return nil
}

func (c *MongoCollection[T]) Delete(ctx context.Context, id string) error {
	// DeleteOne on an absent id matches nothing, which keeps delete
	// idempotent.
	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to delete "+c.kind, err)
	}
	return nil
}

// ListPage returns one page ordered by _id plus the collection total. A
// cursor resumes strictly after (or before, descending) the given id and
// wins over the offset.
func (c *MongoCollection[T]) ListPage(ctx context.Context, req pagination.PageRequest) ([]*T, int64, error) {
	total, err := c.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, utils.NewAppError(utils.ErrDatabase, "failed to count "+c.kind+" records", err)
	}

	direction := 1
	comparator := "$gt"
	if req.Order == pagination.OrderDesc {
		direction = -1
		comparator = "$lt"
	}

	filter := bson.M{}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: direction}}).
		SetLimit(int64(req.Limit))

	if req.Cursor != "" {
		filter["_id"] = bson.M{comparator: req.Cursor}
	} else if req.Offset != nil {
		opts.SetSkip(int64(*req.Offset))
	}

	items, err := c.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (c *MongoCollection[T]) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*T, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = c.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = c.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to query "+c.kind+" records", err)
	}
	defer cursor.Close(ctx)

	records := []*T{}
	for cursor.Next(ctx) {
		var record T
		if err := cursor.Decode(&record); err != nil {
			return nil, utils.NewAppError(utils.ErrDatabase, "failed to decode "+c.kind+" record", err)
		}
		records = append(records, &record)
	}
	if err := cursor.Err(); err != nil {
		return nil, utils.NewAppError(utils.ErrDatabase, "cursor iteration failed for "+c.kind, err)
	}
	return records, nil
}
