package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("db: not found")
	ErrDuplicate = errors.New("db: duplicate key")
)

// DB holds the Mongo client and the collection handles the service uses.
type DB struct {
	client *mongo.Client

	Users      *mongo.Collection
	Recipes    *mongo.Collection
	Categories *mongo.Collection
	Difficulty *mongo.Collection
}

func Connect(ctx context.Context, uri, dbname string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	database := client.Database(dbname)
	return &DB{
		client:     client,
		Users:      database.Collection("users"),
		Recipes:    database.Collection("recipe_detail"),
		Categories: database.Collection("categories"),
		Difficulty: database.Collection("difficulty"),
	}, nil
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique username index, which makes registration
// atomic instead of check-then-insert, and the text index search depends on.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	_, err := d.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}

	_, err = d.Recipes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "recipe_name", Value: "text"},
			{Key: "ingredients", Value: "text"},
			{Key: "cuisine", Value: "text"},
			{Key: "category_name", Value: "text"},
		},
	})
	if err != nil {
		return fmt.Errorf("create recipe text index: %w", err)
	}
	return nil
}
