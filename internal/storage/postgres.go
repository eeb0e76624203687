package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	queryGetItem    = `SELECT value FROM storage_items WHERE key = $1`
	querySetItem    = `INSERT INTO storage_items (key, value, updated_at) VALUES ($1, $2, now()) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	queryRemoveItem = `DELETE FROM storage_items WHERE key = $1`
)

// PostgresStorage stores items in the storage_items table created by the
// migrations directory.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) GetItem(c context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(c, queryGetItem, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed getting key=%s from postgres with error=%w", key, err)
	}
	return value, true, nil
}

func (s *PostgresStorage) SetItem(c context.Context, key string, value string) error {
	_, err := s.pool.Exec(c, querySetItem, key, value)
	if err != nil {
		return fmt.Errorf("failed setting key=%s in postgres with error=%w", key, err)
	}
	return nil
}

func (s *PostgresStorage) RemoveItem(c context.Context, key string) error {
	_, err := s.pool.Exec(c, queryRemoveItem, key)
	if err != nil {
		return fmt.Errorf("failed deleting key=%s from postgres with error=%w", key, err)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	s.pool.Close()
	return nil
}
