package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/exaring/otelpgx"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/Svynct/ignite-rocketshoes/internal/config"
	"github.com/Svynct/ignite-rocketshoes/internal/log"
	"github.com/Svynct/ignite-rocketshoes/internal/otel"
)

func PostgresURL(dbConfig config.Database) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		dbConfig.Username,
		dbConfig.Password,
		dbConfig.Host,
		int(dbConfig.Port),
		dbConfig.Name,
	)
}

// NewDatabaseClient opens a traced pgx pool and migrates the schema up.
func NewDatabaseClient(c context.Context, dbConfig config.Database) (*pgxpool.Pool, error) {
	return NewDatabaseClientFromURL(c, PostgresURL(dbConfig), dbConfig)
}

func NewDatabaseClientFromURL(
	c context.Context,
	postgresUrl string,
	dbConfig config.Database,
) (*pgxpool.Pool, error) {
	c, span := otel.Tracer.Start(c, "infra NewDatabaseClient")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "infra NewDatabaseClient").
		Str(log.KeyDbURL, fmt.Sprintf("%s:%d/%s", dbConfig.Host, dbConfig.Port, dbConfig.Name)).
		Logger()

	fail := func(err error) (*pgxpool.Pool, error) {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "initializing pgx config").Logger()
	logger.Info().Msg("initializing pgx config")
	pgxConfig, err := pgxpool.ParseConfig(postgresUrl)
	if err != nil {
		return fail(fmt.Errorf("failed creating pgx config with error=%w", err))
	}
	if dbConfig.MaxConnections > 0 {
		pgxConfig.MaxConns = int32(dbConfig.MaxConnections)
	}
	if dbConfig.MinConnections > 0 {
		pgxConfig.MinConns = int32(dbConfig.MinConnections)
	}
	pgxConfig.ConnConfig.Tracer = otelpgx.NewTracer(
		otelpgx.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	logger.Info().Msg("initialized pgx config")

	logger = logger.With().Str(log.KeyProcess, "creating connection pool").Logger()
	logger.Info().Msg("creating connection pool")
	pool, err := pgxpool.NewWithConfig(c, pgxConfig)
	if err != nil {
		return fail(fmt.Errorf("failed creating connection pool with error=%w", err))
	}
	if err = pool.Ping(c); err != nil {
		pool.Close()
		return fail(fmt.Errorf("failed ping db with error=%w", err))
	}
	logger.Info().Msg("created connection pool")

	logger = logger.With().Str(log.KeyProcess, "migration up").Logger()
	logger.Info().Msg("migration up")
	db := stdlib.OpenDBFromPool(pool)
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		pool.Close()
		return fail(fmt.Errorf("failed creating postgres migration driver with error=%w", err))
	}
	migration, err := migrate.NewWithDatabaseInstance(dbConfig.MigrationPath, "postgres", driver)
	if err != nil {
		pool.Close()
		return fail(fmt.Errorf("failed initializing migration with error=%w", err))
	}
	err = migration.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		pool.Close()
		return fail(fmt.Errorf("failed migration up with error=%w", err))
	}
	logger.Info().Msg("migrated up")

	return pool, nil
}
