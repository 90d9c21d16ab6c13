package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names, shared with the aggregation pipelines that $lookup
// across them.
const (
	UsersCollection    = "users"
	ArticlesCollection = "articles"
	PostsCollection    = "posts"
	RequestsCollection = "requests"
	HistoryCollection  = "history"
)

// DB wraps the single shared Mongo client. It is constructed once in main
// and handed to every handler; nothing else holds the client.
type DB struct {
	Client   *mongo.Client
	Users    *mongo.Collection
	Articles *mongo.Collection
	Posts    *mongo.Collection
	Requests *mongo.Collection
	History  *mongo.Collection
}

func Connect(uri, dbName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	d := client.Database(dbName)
	db := &DB{
		Client:   client,
		Users:    d.Collection(UsersCollection),
		Articles: d.Collection(ArticlesCollection),
		Posts:    d.Collection(PostsCollection),
		Requests: d.Collection(RequestsCollection),
		History:  d.Collection(HistoryCollection),
	}

	if err := db.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// ensureIndexes backs the application-level uniqueness check on user email
// with a real unique index so racing creates still cannot duplicate.
func (db *DB) ensureIndexes(ctx context.Context) error {
	_, err := db.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (db *DB) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return db.Client.Disconnect(ctx)
}
