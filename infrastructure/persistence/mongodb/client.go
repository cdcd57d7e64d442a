/*
Package mongodb implements the persistence ports against a MongoDB
document store.
*/
package mongodb

import (
	"context"
	"fmt"

	"weblarek/config"
	"weblarek/infrastructure/persistence/retry"
	"weblarek/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	customersCollection = "customers"
	ordersCollection    = "orders"
	productsCollection  = "products"
	countersCollection  = "counters"
)

// Connect establishes a client and returns the configured database
// handle. The caller owns disconnecting the client.
func Connect(ctx context.Context, cfg *config.DatabaseConfig) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout)

	if cfg.LogCommands {
		opts.SetMonitor(logger.NewMongoCommandMonitor(nil))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// A store still coming up mid-deploy answers the first ping with a
	// transient error; back off instead of failing the boot outright.
	err = retry.ExecuteWithRetry(ctx, retry.DefaultConfig, func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the unique indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	if _, err := db.Collection(customersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("failed to create customer email index: %w", err)
	}

	if _, err := db.Collection(ordersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "orderNumber", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("failed to create order number index: %w", err)
	}

	return nil
}
