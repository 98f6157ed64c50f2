// Package cache persists fetched template lists in an embedded BadgerDB so a
// client restarted offline can keep working against recent templates.
// Entries are keyed per query tuple and expire after a TTL; a stale, corrupt,
// or foreign-shaped entry reads as a miss, never as an error.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/goliatone/go-intake/pkg/schema"
)

// DefaultTTL is how long a stored template list stays loadable.
const DefaultTTL = 24 * time.Hour

// Config holds the storage settings for Open.
type Config struct {
	// Path is the directory for the database files. Required unless
	// InMemory is set.
	Path string

	// InMemory keeps everything in RAM. Useful for tests and ephemeral
	// sessions.
	InMemory bool

	// SyncWrites makes every write durable before returning.
	SyncWrites bool

	// Logger receives store activity and Badger's internal logging. When
	// nil, the store logs through slog.Default and Badger stays silent.
	Logger *slog.Logger
}

// Store is a TTL-bound template cache. Safe for concurrent use.
type Store struct {
	db     *badger.DB
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// entry is the persisted shape: the template list plus its capture moment in
// epoch milliseconds. Template date fields serialize through their RFC 3339
// JSON form and reconstruct on load.
type entry struct {
	Templates []schema.Template `json:"templates"`
	Timestamp int64             `json:"timestamp"`
}

// Open opens (creating if needed) a template cache at cfg.Path.
func Open(cfg Config, opts ...Option) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("cache: path is required for a persistent store")
	}

	var badgerOpts badger.Options
	if cfg.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("cache: create directory %s: %w", cfg.Path, err)
		}
		badgerOpts = badger.DefaultOptions(cfg.Path)
	}
	badgerOpts = badgerOpts.WithSyncWrites(cfg.SyncWrites)
	badgerOpts = badgerOpts.WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		badgerOpts = badgerOpts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		badgerOpts = badgerOpts.WithLogger(nil)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("cache: open database: %w", err)
	}

	store := &Store{
		db:     db,
		ttl:    DefaultTTL,
		logger: cfg.Logger,
		now:    time.Now,
	}
	if store.logger == nil {
		store.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// OpenInMemory opens a cache that lives only as long as the process.
func OpenInMemory(opts ...Option) (*Store, error) {
	return Open(Config{InMemory: true}, opts...)
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores the template list for the query, stamped with the current
// moment. It replaces whatever the slot held before.
func (s *Store) Save(query Query, templates []schema.Template) error {
	payload, err := json.Marshal(entry{
		Templates: templates,
		Timestamp: s.now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("cache: encode templates: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(query.Key(), payload).WithTTL(s.ttl))
	})
	if err != nil {
		return fmt.Errorf("cache: store templates for %s: %w", query, err)
	}
	return nil
}

// Load returns the template list stored for the query when one exists and is
// younger than the TTL. An expired or undecodable entry is deleted and
// reported as a miss. Load never fails: every problem is a miss.
func (s *Store) Load(query Query) ([]schema.Template, bool) {
	key := query.Key()

	var payload []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false
	}
	if err != nil {
		s.logger.Debug("cache: read failed, treating as miss", "query", query.String(), "error", err)
		return nil, false
	}

	var stored entry
	if err := json.Unmarshal(payload, &stored); err != nil {
		s.logger.Debug("cache: corrupt entry evicted", "query", query.String(), "error", err)
		s.evict(key)
		return nil, false
	}

	captured := time.UnixMilli(stored.Timestamp)
	if s.now().Sub(captured) > s.ttl {
		s.logger.Debug("cache: expired entry evicted", "query", query.String(), "capturedAt", captured)
		s.evict(key)
		return nil, false
	}

	return stored.Templates, true
}

// Delete drops the entry for the query, if any.
func (s *Store) Delete(query Query) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(query.Key())
	})
	if err != nil {
		return fmt.Errorf("cache: delete entry for %s: %w", query, err)
	}
	return nil
}

func (s *Store) evict(key []byte) {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		s.logger.Debug("cache: evict failed", "error", err)
	}
}

// badgerLogger adapts slog to Badger's internal logger contract.
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
