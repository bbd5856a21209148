// Package storage archives scrape results to files or MongoDB.
package storage

import (
	"fmt"
	"log/slog"

	"github.com/arjunmehra/shopscout/internal/config"
	"github.com/arjunmehra/shopscout/internal/types"
)

// Storage is the interface for all archive backends.
type Storage interface {
	// Store persists one scrape result.
	Store(result *types.ScrapeResult) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the storage backend identifier.
	Name() string
}

// New creates the storage backend named in config.
func New(cfg config.StorageConfig, logger *slog.Logger) (Storage, error) {
	switch cfg.Type {
	case "json", "jsonl", "csv":
		return NewFileStorage(cfg.Type, cfg.OutputPath, logger)
	case "mongodb":
		return NewMongoStorage(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, logger)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
