// Package recents keeps the most recently used signature references across
// sessions.
package recents

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/syndtr/goleveldb/leveldb"
	lverrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

const (
	DefaultKey = "pdf-editor-recent-signatures"
	Capacity   = 2
)

type Store struct {
	db     *leveldb.DB
	key    []byte
	logger logrus.FieldLogger
}

func newStore(db *leveldb.DB, key string, logger logrus.FieldLogger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{db: db, key: []byte(key), logger: logger}
}

// Open opens or creates the store at path, recovering a corrupted database
// when possible.
func Open(path, key string, logger logrus.FieldLogger) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if lverrors.IsCorrupted(err) {
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open recents at %s", path)
	}

	return newStore(db, key, logger), nil
}

// NewMemory returns a store that lives only as long as the process.
func NewMemory(key string, logger logrus.FieldLogger) (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "open memory recents")
	}

	return newStore(db, key, logger), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) load() ([]string, error) {
	raw, err := s.db.Get(s.key, nil)
	if err == leveldb.ErrNotFound {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	list := []string{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, errors.Wrap(err, "decode recents")
	}

	return list, nil
}

// List returns the stored references, newest first. A store that cannot be
// read is reported as empty.
func (s *Store) List() []string {
	list, err := s.load()
	if err != nil {
		s.logger.WithError(err).Warn("could not read recent signatures")
		return []string{}
	}

	if len(list) > Capacity {
		list = list[:Capacity]
	}

	return list
}

// Add moves src to the front of the list and returns the new list. The list
// is returned even when it could not be persisted.
func (s *Store) Add(src string) []string {
	if src == "" {
		return s.List()
	}

	list := Push(s.List(), src, Capacity)

	raw, err := json.Marshal(list)
	if err == nil {
		err = s.db.Put(s.key, raw, nil)
	}
	if err != nil {
		s.logger.WithError(err).Warn("could not save recent signatures")
	}

	return list
}

// Push puts src at the front of list, dropping an older copy of it and
// anything beyond capacity.
func Push(list []string, src string, capacity int) []string {
	out := []string{src}

	for _, s := range list {
		if len(out) >= capacity {
			break
		}
		if s != src {
			out = append(out, s)
		}
	}

	return out
}
