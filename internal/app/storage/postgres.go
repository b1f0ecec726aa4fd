package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"journal/internal/app/db"
)

const (
	loadSnapshotSQL   = `SELECT value FROM client_snapshots WHERE key = $1`
	saveSnapshotSQL   = `INSERT INTO client_snapshots (key, value, updated_at) VALUES ($1, $2, now()) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	deleteSnapshotSQL = `DELETE FROM client_snapshots WHERE key = $1`
)

type postgresStorage struct {
	pool *pgxpool.Pool
}

func newPostgresStorage(ctx context.Context, dsn string) (*postgresStorage, error) {
	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &postgresStorage{pool: pool}, nil
}

func (s *postgresStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	if err := s.pool.QueryRow(ctx, loadSnapshotSQL, key).Scan(&data); err != nil {
		if db.IsNoRows(err) || db.IsUndefinedTable(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return data, nil
}

func (s *postgresStorage) Save(ctx context.Context, key string, data []byte) error {
	if _, err := s.pool.Exec(ctx, saveSnapshotSQL, key, data); err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

func (s *postgresStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, deleteSnapshotSQL, key); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}

func (s *postgresStorage) Close() error {
	s.pool.Close()
	return nil
}
