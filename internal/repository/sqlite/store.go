// Package sqlite persists the in-memory store to a single SQLite file.
// Every committed unit of work rewrites the four collection buckets inside
// one SQL transaction before the new state is published.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shinyyama/harvestx-backend/internal/repository"
	"github.com/shinyyama/harvestx-backend/internal/repository/memory"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

var _ repository.Store = (*Store)(nil)

const (
	bucketUsers        = "users"
	bucketOffers       = "offers"
	bucketRequests     = "requests"
	bucketTransactions = "transactions"
)

var buckets = []string{bucketUsers, bucketOffers, bucketRequests, bucketTransactions}

type Store struct {
	*memory.Store
	db   *sql.DB
	path string
}

func NewStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = "harvestx.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection keeps writers from tripping over SQLITE_BUSY
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	s := &Store{db: db, path: path}
	s.Store = memory.NewStore(memory.WithCommitHook(s.persist))
	snapshot, err := s.load(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.ImportState(snapshot)
	return s, nil
}

func (s *Store) load(ctx context.Context) (memory.Snapshot, error) {
	var snapshot memory.Snapshot
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return snapshot, fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var (
			bucket  string
			payload []byte
		)
		if err := rows.Scan(&bucket, &payload); err != nil {
			return snapshot, fmt.Errorf("scan: %w", err)
		}
		var target any
		switch bucket {
		case bucketUsers:
			target = &snapshot.Users
		case bucketOffers:
			target = &snapshot.Offers
		case bucketRequests:
			target = &snapshot.Requests
		case bucketTransactions:
			target = &snapshot.Transactions
		default:
			continue
		}
		if err := json.Unmarshal(payload, target); err != nil {
			return snapshot, fmt.Errorf("decode %s: %w", bucket, err)
		}
	}
	if err := rows.Err(); err != nil {
		return snapshot, fmt.Errorf("iterate state: %w", err)
	}
	return snapshot, nil
}

func (s *Store) persist(ctx context.Context, snapshot memory.Snapshot) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range buckets {
		var data []byte
		switch bucket {
		case bucketUsers:
			data, err = json.Marshal(snapshot.Users)
		case bucketOffers:
			data, err = json.Marshal(snapshot.Offers)
		case bucketRequests:
			data, err = json.Marshal(snapshot.Requests)
		case bucketTransactions:
			data, err = json.Marshal(snapshot.Transactions)
		}
		if err != nil {
			return fmt.Errorf("encode %s: %w", bucket, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, bucket, data); err != nil {
			return fmt.Errorf("upsert %s: %w", bucket, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for tests.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Path() string { return s.path }
