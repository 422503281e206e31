package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// MongoDB giữ client và database handle cho document store (reviews)
type MongoDB struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// ConnectMongo mở client và ping primary trước khi trả về
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*MongoDB, error) {
	log.Info().Str("database", cfg.Database).Msg("[MONGO] Connecting...")

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	log.Info().Msg("[MONGO] Connection established successfully")
	return &MongoDB{Client: client, DB: client.Database(cfg.Database)}, nil
}

func (m *MongoDB) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := m.Client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	log.Info().Msg("[MONGO] Disconnecting...")
	return m.Client.Disconnect(ctx)
}
