package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/gestock/inventory-backend/internal/platform/logger"
)

const connectTimeout = 10 * time.Second

// Handle bundles the client and the selected database so every repository
// receives one explicit storage dependency instead of reaching for a global.
type Handle struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func Connect(uri, dbName string) (*Handle, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info("Successfully connected to MongoDB database %q", dbName)
	return &Handle{Client: client, DB: client.Database(dbName)}, nil
}

func (h *Handle) Close(ctx context.Context) error {
	return h.Client.Disconnect(ctx)
}
