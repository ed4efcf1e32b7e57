package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"library-catalog/internal/config"
)

// MongoDB wraps the client and the application database handle
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect establishes the MongoDB connection and verifies it with a ping
func Connect(ctx context.Context, cfg config.MongoConfig) (*MongoDB, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxConns))
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoDB{
		Client:   client,
		Database: client.Database(cfg.Database),
	}, nil
}

// Close disconnects the client
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
