// Package store persists the application's collections in an embedded
// key-value database. Each collection is a single key holding a JSON array
// (the auth session is a single JSON object). Callers load a whole
// collection, mutate a local copy, and save it back; load-modify-save
// sequences are not isolated, so concurrent writers are last-write-wins.
package store

import (
	"encoding/json"
	"errors"
	"reflect"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// Collection keys. The version suffix is part of the stored format.
const (
	UsersCollection      = "scs_users_v4"
	ComplaintsCollection = "scs_complaints_v4"
	CommentsCollection   = "scs_comments_v4"
	AuthCollection       = "scs_auth_v4"
)

// Config controls how the underlying database is opened.
type Config struct {
	Path       string // directory for database files; ignored when InMemory
	InMemory   bool   // no disk persistence, used by tests
	SyncWrites bool   // fsync on every write
}

// Store wraps the embedded database behind collection load/save calls.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the database described by cfg.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("store: path is required for a persistent database")
	}
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a throwaway store for tests.
func OpenInMemory() (*Store, error) {
	return Open(Config{InMemory: true})
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads a collection into dest. A missing key leaves dest untouched and
// a payload that fails to decode resets dest to its zero value: corrupt or
// absent data degrades to the empty collection instead of failing the caller.
func (s *Store) Load(collection string, dest any) error {
	var payload []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(collection))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		logrus.WithFields(logrus.Fields{
			"collection": collection,
			"error":      err.Error(),
		}).Warn("Corrupt collection payload, treating as empty")
		rv := reflect.ValueOf(dest).Elem()
		rv.Set(reflect.Zero(rv.Type()))
	}
	return nil
}

// Save serializes v and replaces the collection's previous content.
func (s *Store) Save(collection string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(collection), payload)
	})
}

// Drop removes a collection key entirely. Removing an absent key is a no-op.
func (s *Store) Drop(collection string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(collection))
	})
}
