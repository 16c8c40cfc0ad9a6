// Package storage persists analysis artifacts (lifted IL, disassembly,
// user notes) in a LevelDB database keyed by namespace prefixes.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/narwhalsec/shil/common"
	"github.com/narwhalsec/shil/log"
	"github.com/syndtr/goleveldb/leveldb"
	leveldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
)

// Key namespaces. Each artifact class gets its own prefix so a scan can
// enumerate one class without touching the others.
const (
	LiftPrefix = "lift/"
	AsmPrefix  = "asm/"
	NotePrefix = "note/"
)

// Store wraps LevelDB for raw key-value persistence of analysis artifacts.
// Thread-safe: LevelDB handles its own synchronization.
type Store struct {
	db *leveldb.DB
}

// Open opens or creates a LevelDB database at the given path.
// If path is empty, uses in-memory storage.
func Open(path string) (*Store, error) {
	var db *leveldb.DB
	var err error

	if path == "" {
		db, err = leveldb.Open(leveldbstorage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}

	log.Debug(log.StoreModule, "store opened", "path", path)
	return &Store{db: db}, nil
}

// OpenMemory creates an in-memory Store for testing.
func OpenMemory() (*Store, error) {
	return Open("")
}

// Get retrieves a value by key. Returns (nil, false, nil) if not found.
func (s *Store) Get(key []byte) ([]byte, bool, error) {
	data, err := s.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("Get %x: %w", key, err)
	}
	return data, true, nil
}

func (s *Store) Put(key []byte, value []byte) error {
	return s.db.Put(key, value, nil)
}

func (s *Store) Delete(key []byte) error {
	return s.db.Delete(key, nil)
}

// PrefixScan returns all key-value pairs with the given prefix, sorted by
// key order. Keys and values are copied out of the iterator.
func (s *Store) PrefixScan(prefix []byte) ([][2][]byte, error) {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	var results [][2][]byte
	for ok := iter.Seek(prefix); ok; ok = iter.Next() {
		key := iter.Key()
		if !bytes.HasPrefix(key, prefix) {
			break
		}

		keyCopy := make([]byte, len(key))
		copy(keyCopy, key)
		valueCopy := make([]byte, len(iter.Value()))
		copy(valueCopy, iter.Value())

		results = append(results, [2][]byte{keyCopy, valueCopy})
	}

	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("PrefixScan %x: %w", prefix, err)
	}
	return results, nil
}

// PutJSON marshals v and stores it under key.
func (s *Store) PutJSON(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("PutJSON %s: %w", key, err)
	}
	return s.Put(key, data)
}

// GetJSON loads the value under key and unmarshals it into v.
// Returns (false, nil) if the key is absent.
func (s *Store) GetJSON(key []byte, v any) (bool, error) {
	data, found, err := s.Get(key)
	if err != nil || !found {
		return found, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("GetJSON %s: %w", key, err)
	}
	return true, nil
}

// LiftKey returns the content address for a lifted instruction: the blake2b
// hash of the instruction's pc and raw encoding under the lift namespace.
// Identical (pc, raw) pairs always map to the same key.
func LiftKey(pc uint64, raw []byte) []byte {
	h := common.Blake2Hash(append(common.Uint64ToBytes(pc), raw...))
	return append([]byte(LiftPrefix), h.Bytes()...)
}

// PutLift stores the JSON rendering of an instruction's IL under its content
// address and returns the hash component of the key.
func (s *Store) PutLift(pc uint64, raw []byte, ilJSON []byte) (common.Hash, error) {
	key := LiftKey(pc, raw)
	if err := s.Put(key, ilJSON); err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(key[len(LiftPrefix):]), nil
}

// GetLift loads the stored IL JSON for the given (pc, raw) pair.
func (s *Store) GetLift(pc uint64, raw []byte) ([]byte, bool, error) {
	return s.Get(LiftKey(pc, raw))
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying LevelDB instance for advanced operations.
// Use sparingly - prefer the wrapper methods.
func (s *Store) DB() *leveldb.DB {
	return s.db
}
