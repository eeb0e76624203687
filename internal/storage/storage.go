// Package storage holds the durable key-value string storage the cart
// snapshot is mirrored to. Every driver stores opaque strings under string
// keys, the way browser local storage does.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Svynct/ignite-rocketshoes/internal/config"
	inErrors "github.com/Svynct/ignite-rocketshoes/internal/errors"
	"github.com/Svynct/ignite-rocketshoes/internal/infra"
	"github.com/Svynct/ignite-rocketshoes/internal/log"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Storage interface {
	// GetItem returns the value under key and whether the key exists.
	GetItem(c context.Context, key string) (string, bool, error)
	SetItem(c context.Context, key string, value string) error
	RemoveItem(c context.Context, key string) error
	Close() error
}

// New opens the storage driver selected by cfg.Storage.Driver.
func New(c context.Context, cfg config.Config) (Storage, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "storage New").
		Str(log.KeyStorageDriver, cfg.Storage.Driver).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "opening storage").Logger()
	logger.Info().Msg("opening storage")
	c = logger.WithContext(c)
	switch cfg.Storage.Driver {
	case DriverMemory:
		return NewMemoryStorage(), nil
	case DriverFile:
		return NewFileStorage(cfg.Storage.Directory)
	case DriverRedis:
		client, err := infra.NewCacheClient(c, cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("failed opening redis storage with error=%w", err)
		}
		return NewRedisStorage(client), nil
	case DriverPostgres:
		pool, err := infra.NewDatabaseClient(c, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed opening postgres storage with error=%w", err)
		}
		return NewPostgresStorage(pool), nil
	}

	err := fmt.Errorf("storage driver=%q: %w", cfg.Storage.Driver, inErrors.ErrUnknownStorageDriver)
	logger.Error().Err(err).Msg(err.Error())
	return nil, err
}
