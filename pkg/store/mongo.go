package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/slacklinehq/slackline/pkg/project"
)

// MongoStore is a MongoDB-backed project store for server deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig holds connection settings for the Mongo backend.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to "slackline"
	Collection string // defaults to "projects"
}

// mongoProject is the stored document shape. The project id doubles as the
// document _id so Put is a natural upsert.
type mongoProject struct {
	ID    string         `bson:"_id"`
	Name  string         `bson:"name"`
	Tasks []project.Task `bson:"tasks"`
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "slackline"
	}
	if cfg.Collection == "" {
		cfg.Collection = "projects"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo at %s: %w", cfg.URI, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo at %s: %w", cfg.URI, err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get retrieves a project by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*project.Project, error) {
	var doc mongoProject
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project %s: %w", id, err)
	}
	return &project.Project{ID: doc.ID, Name: doc.Name, Tasks: doc.Tasks}, nil
}

// Put stores a project as an upsert on its id.
func (s *MongoStore) Put(ctx context.Context, p *project.Project) error {
	doc := mongoProject{ID: p.ID, Name: p.Name, Tasks: p.Tasks}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store project %s: %w", p.ID, err)
	}
	return nil
}

// Delete removes a project.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all stored projects.
func (s *MongoStore) List(ctx context.Context) ([]*project.Project, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cur.Close(ctx)

	var out []*project.Project
	for cur.Next(ctx) {
		var doc mongoProject
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		out = append(out, &project.Project{ID: doc.ID, Name: doc.Name, Tasks: doc.Tasks})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return out, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
