package storage

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Store is the local persisted-state store: a flat key/value space with
// get/set/list/delete plus prefix scans, used for sessions, chat history,
// check-ins, insights, API keys and caches. Values are opaque strings,
// usually JSON blobs.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store under dirPath.
func Open(dirPath string) (*Store, error) {
	opts := badger.DefaultOptions(dirPath).
		WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	return &Store{db: db}, nil
}

func (store *Store) Close() error {
	if store.db != nil {
		return store.db.Close()
	}
	return nil
}

// Get returns the value for key and whether it exists.
func (store *Store) Get(key string) (string, bool, error) {
	var value string
	found := false

	err := store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			found = true
			return nil
		})
	})
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}

func (store *Store) Set(key string, value string) error {
	return store.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

func (store *Store) Delete(key string) error {
	return store.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

// List returns all keys with the given prefix, in key order.
func (store *Store) List(prefix string) ([]string, error) {
	keys := make([]string, 0)
	err := store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		iterator := txn.NewIterator(opts)
		defer iterator.Close()

		prefixBytes := []byte(prefix)
		for iterator.Seek(prefixBytes); iterator.ValidForPrefix(prefixBytes); iterator.Next() {
			keys = append(keys, string(iterator.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// DeletePrefix removes every key with the given prefix.
func (store *Store) DeletePrefix(prefix string) error {
	keys, err := store.List(prefix)
	if err != nil {
		return err
	}
	return store.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete([]byte(key)); err != nil && err != badger.ErrKeyNotFound {
				return err
			}
		}
		return nil
	})
}
