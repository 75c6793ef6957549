/*
Package iavl provides a durable CommitKVStore backed by an iavl merkle tree
persisted in goleveldb.

Writes go to the working tree. Writing a cache wrap created with CacheWrap
commits a new tree version, so every successful coordinator operation is
durable once it returns.
*/
package iavl

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

const cacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ quorum.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with disk backing. The latest
// persisted version is loaded.
func NewCommitStore(dir, name string) (*CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s/%s: %s", dir, name, err)
	}
	return newCommitStore(db)
}

// NewMemCommitStore creates a store that keeps all versions in memory.
func NewMemCommitStore() (*CommitStore, error) {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) (*CommitStore, error) {
	s := &CommitStore{
		tree: iavl.NewMutableTree(db, cacheSize),
		db:   db,
	}
	if err := s.LoadLatestVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Get returns the value from the working tree.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.Get(key)
	return val, nil
}

// Has checks if a key exists in the working tree.
func (s *CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// Set writes to the working tree. It is persisted with the next Commit.
func (s *CommitStore) Set(key, value []byte) error {
	s.tree.Set(key, value)
	return nil
}

// Delete removes from the working tree.
func (s *CommitStore) Delete(key []byte) error {
	s.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that writes to the working tree.
func (s *CommitStore) NewBatch() quorum.Batch {
	return store.NewNonAtomicBatch(s)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *CommitStore) Iterator(start, end []byte) (quorum.Iterator, error) {
	return s.iterate(start, end, true), nil
}

// ReverseIterator over a domain of keys in descending order. End is
// exclusive.
func (s *CommitStore) ReverseIterator(start, end []byte) (quorum.Iterator, error) {
	return s.iterate(start, end, false), nil
}

func (s *CommitStore) iterate(start, end []byte, ascending bool) quorum.Iterator {
	var res []store.Model
	s.tree.IterateRange(start, end, ascending, func(key []byte, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(res)
}

// CacheWrap returns a scratch pad over the working tree. Writing it commits
// a new version.
func (s *CommitStore) CacheWrap() quorum.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, &commitBatch{
		NonAtomicBatch: store.NewNonAtomicBatch(s),
		commit:         s,
	}, nil)
}

// Commit the next version to disk, and returns info
func (s *CommitStore) Commit() (quorum.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return quorum.CommitID{}, errors.Wrapf(errors.ErrDatabase, "save version: %s", err)
	}
	return quorum.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion loads the latest persisted version.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "load tree: %s", err)
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() (quorum.CommitID, error) {
	return quorum.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// Close releases the database.
func (s *CommitStore) Close() error {
	s.db.Close()
	return nil
}

// commitBatch writes all collected operations to the working tree and saves
// a new version.
type commitBatch struct {
	*store.NonAtomicBatch
	commit *CommitStore
}

func (b *commitBatch) Write() error {
	if err := b.NonAtomicBatch.Write(); err != nil {
		return err
	}
	_, err := b.commit.Commit()
	return err
}
