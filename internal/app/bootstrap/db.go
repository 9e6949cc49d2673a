// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/omstools/importassist/internal/app/store/datasets"
	"github.com/omstools/importassist/internal/app/store/reviews"
)

// ConnectDB establishes the MongoDB connection used by the stores.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the TTL indexes that expire stored datasets and
// review snapshots.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := datasets.New(deps.MongoDatabase, appCfg.DatasetTTL).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure dataset indexes: %w", err)
	}
	if err := reviews.New(deps.MongoDatabase, appCfg.ReviewTTL).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure review indexes: %w", err)
	}
	logger.Info("mongo indexes ensured")
	return nil
}
