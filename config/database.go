package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var db *mongo.Database

// InitDatabase establishes a connection to MongoDB using configuration values.
// Server selection is capped at 10 seconds; an unreachable store fails the
// request rather than blocking indefinitely.
func InitDatabase() *mongo.Database {
	if db != nil {
		return db
	}

	cfg := Get()
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Ping at boot to expose network/auth problems early instead of on the
	// first query.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("database ping failed: %v", err)
	}

	db = client.Database(cfg.MongoDatabase)
	return db
}

// DB provides access to the initialized mongo database handle.
func DB() *mongo.Database {
	if db == nil {
		log.Fatal("database not initialized, call InitDatabase first")
	}
	return db
}
