package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/protocompat/pkg/domain"
	backend "github.com/dgraph-io/badger/v4"
)

const keyPrefix = "run/"

// Store implements ports.ResultStore on an embedded Badger database.
// Safe for concurrent use.
type Store struct {
	db    *backend.DB
	owned bool
}

type Option func(*options)

type options struct {
	inMemory bool
	logger   *slog.Logger
}

// WithInMemory keeps the database in memory. The path is ignored.
func WithInMemory() Option {
	return func(o *options) { o.inMemory = true }
}

// WithLogger routes Badger's internal logging to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Open opens (or creates) a database at path. The caller must Close the store.
func Open(path string, opts ...Option) (*Store, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var bopts backend.Options
	if o.inMemory {
		bopts = backend.DefaultOptions("").WithInMemory(true)
	} else {
		if path == "" {
			return nil, errors.New("path is required for a persistent database")
		}
		if err := os.MkdirAll(path, 0750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", path, err)
		}
		bopts = backend.DefaultOptions(path).WithSyncWrites(true)
	}
	bopts = bopts.WithNumVersionsToKeep(1)

	if o.logger != nil {
		bopts = bopts.WithLogger(&badgerLogger{logger: o.logger})
	} else {
		bopts = bopts.WithLogger(nil)
	}

	db, err := backend.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &Store{db: db, owned: true}, nil
}

// NewFromDB wraps an already opened database. Close leaves it open.
func NewFromDB(db *backend.DB) *Store {
	return &Store{db: db}
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

// Save persists the run.
func (s *Store) Save(ctx context.Context, run *domain.Run) error {
	if run == nil || run.ID == "" {
		return errors.New("run ID cannot be empty")
	}
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	err = s.db.Update(func(txn *backend.Txn) error {
		return txn.Set(key(run.ID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// Load retrieves a run by ID.
func (s *Store) Load(ctx context.Context, id string) (*domain.Run, error) {
	var data []byte
	err := s.db.View(func(txn *backend.Txn) error {
		item, err := txn.Get(key(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, backend.ErrKeyNotFound) {
			return nil, fmt.Errorf("%s: %w", id, domain.ErrRunNotFound)
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	var run domain.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &run, nil
}

// Delete removes the run.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(txn *backend.Txn) error {
		return txn.Delete(key(id))
	})
}

// List returns stored run IDs in key order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids := []string{}
	err := s.db.View(func(txn *backend.Txn) error {
		opts := backend.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			ids = append(ids, string(it.Item().Key()[len(keyPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return ids, nil
}

// Close closes the database if the store opened it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
