package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Svynct/ignite-rocketshoes/internal/config"
	"github.com/Svynct/ignite-rocketshoes/internal/infra"
)

func TestPostgresStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	c := context.Background()

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("storefront"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "failed running postgres container")
	defer func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	pgConnStr, err := pgContainer.ConnectionString(c, "sslmode=disable")
	require.NoError(t, err)

	migrations, err := filepath.Abs(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)
	pool, err := infra.NewDatabaseClientFromURL(c, pgConnStr, config.Database{
		Name:          "storefront",
		MigrationPath: "file://" + migrations,
	})
	require.NoError(t, err)

	s := NewPostgresStorage(pool)
	defer s.Close()
	exerciseStorage(t, s)
}
