// Package sink provides LogSink implementations, with MongoDB as the production target
package sink

import (
	"context"
	"fmt"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-client/base"
	"github.com/relex/slog-client/defs"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config defines the sink section in config file
type Config struct {
	Address    string `yaml:"address"`    // MongoDB connection URI, required outside local mode
	Database   string `yaml:"database"`   // Target database name
	Collection string `yaml:"collection"` // Target collection name
}

// withDefaults fills in the default database and collection names; the address has no default
func (config Config) withDefaults() Config {
	if config.Database == "" {
		config.Database = "logs"
	}
	if config.Collection == "" {
		config.Collection = "records"
	}
	return config
}

// MongoSink writes batches to one MongoDB collection via unordered bulk inserts
//
// The connection is established once at construction and reused for the sink's lifetime; Write
// is safe for concurrent batches as the driver manages its own connection pool.
type MongoSink struct {
	logger     logger.Logger
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoSink connects to MongoDB and resolves the target collection
//
// The connection is verified eagerly so a wrong address fails at startup instead of at the
// first write.
func NewMongoSink(parentLogger logger.Logger, config Config) (*MongoSink, error) {
	cfg := config.withDefaults()
	sinkLogger := parentLogger.WithField(defs.LabelComponent, "MongoSink")

	ctx, cancel := context.WithTimeout(context.Background(), defs.SinkConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Address))
	if err != nil {
		return nil, fmt.Errorf("invalid sink address: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to reach sink: %w", err)
	}

	sinkLogger.Infof("connected, target %s.%s", cfg.Database, cfg.Collection)
	return &MongoSink{
		logger:     sinkLogger,
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Write inserts all records of the batch with ordered=false, so valid documents still land when
// others in the same batch fail validation; any failure, partial or total, surfaces as an error
// for the transport's drop-and-report policy
func (sink *MongoSink) Write(ctx context.Context, batch base.FlushBatch) error {
	documents := make([]interface{}, len(batch.Records))
	for i := range batch.Records {
		documents[i] = batch.Records[i].ToDocument()
	}

	if _, err := sink.collection.InsertMany(ctx, documents, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("insert batch %s: %w", batch.ID, err)
	}
	return nil
}

// Close disconnects from MongoDB; must be called after the transport has drained
func (sink *MongoSink) Close(ctx context.Context) error {
	sink.logger.Info("disconnecting")
	if err := sink.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect sink: %w", err)
	}
	return nil
}
